package entities

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a caller-namespaced key-value annotation on a name. Entries are
// not gated by ownership: any address may write entries under its own setter
// namespace, against any name, including names that were never registered.
type Entry struct {
	ID        uuid.UUID  `json:"-"`
	Setter    string     `json:"setter"`
	Name      string     `json:"name"`
	Type      RecordType `json:"type"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}
