package models

import "time"

// StateRecord is one persisted per-identity collection (cart, wishlist, or
// order history), stored as raw JSON under its namespaced key. The payload
// carries no schema version; callers that fail to decode it treat the
// collection as empty.
type StateRecord struct {
	Key       string `gorm:"primaryKey;type:varchar(120)"`
	Payload   []byte
	UpdatedAt time.Time
}
