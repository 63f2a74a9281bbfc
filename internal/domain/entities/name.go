package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Name represents a registered WRLD name. The stored form is normalized
// (ASCII case-folded to lower); lookups must normalize before querying.
type Name struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Owner             string      `json:"owner"`
	Controller        string      `json:"controller"`
	ExpiresAt         int64       `json:"expiresAt"`
	TokenID           int64       `json:"tokenId"`
	AlternateResolver null.String `json:"alternateResolver,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// IsExpired reports whether the registration has lapsed at the given unix time.
func (n *Name) IsExpired(now int64) bool {
	return now >= n.ExpiresAt
}

// HasAlternateResolver reports whether record reads for this name are
// delegated to an external resolver.
func (n *Name) HasAlternateResolver() bool {
	return n.AlternateResolver.Valid && n.AlternateResolver.String != ""
}

// NameInfo is the public read shape of a registration.
type NameInfo struct {
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	Controller string `json:"controller"`
	ExpiresAt  int64  `json:"expiresAt"`
	TokenID    int64  `json:"tokenId"`
}

// Info maps a Name to its public read shape.
func (n *Name) Info() *NameInfo {
	return &NameInfo{
		Name:       n.Name,
		Owner:      n.Owner,
		Controller: n.Controller,
		ExpiresAt:  n.ExpiresAt,
		TokenID:    n.TokenID,
	}
}
