package usecases

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// MetadataProvider renders a tokenURI for a registered name.
type MetadataProvider interface {
	TokenURI(tokenID int64, name string, expiresAt int64) (string, error)
}

type dataURIMetadata struct{}

// NewDataURIMetadata returns the default metadata provider, rendering a
// base64-encoded JSON data URI.
func NewDataURIMetadata() MetadataProvider {
	return dataURIMetadata{}
}

type tokenMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Attributes  []tokenAttribute `json:"attributes"`
}

type tokenAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

func (dataURIMetadata) TokenURI(tokenID int64, name string, expiresAt int64) (string, error) {
	meta := tokenMetadata{
		Name:        name + ".wrld",
		Description: "WRLD Name Service name",
		Attributes: []tokenAttribute{
			{TraitType: "Token ID", Value: fmt.Sprintf("%d", tokenID)},
			{TraitType: "Expires", Value: time.Unix(expiresAt, 0).UTC().Format(time.RFC3339)},
		},
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(raw), nil
}
