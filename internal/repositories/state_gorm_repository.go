package repositories

import (
	"fmt"

	"furniro/internal/models"

	"gorm.io/gorm"
)

// GORMStateStore is a GORM implementation of StateStore backed by a single
// key→payload table.
type GORMStateStore struct {
	db *gorm.DB
}

// NewGORMStateStore creates a new instance of GORMStateStore.
func NewGORMStateStore(db *gorm.DB) *GORMStateStore {
	return &GORMStateStore{
		db: db,
	}
}

// Load retrieves the payload stored under a key.
func (r *GORMStateStore) Load(key string) ([]byte, error) {
	var record models.StateRecord
	if err := r.db.First(&record, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to load state for key %s: %w", key, err)
	}
	return record.Payload, nil
}

// Save writes the payload under a key, replacing any previous payload.
func (r *GORMStateStore) Save(key string, payload []byte) error {
	record := models.StateRecord{Key: key, Payload: payload}
	res := r.db.Where("key = ?", key).
		Assign(map[string]interface{}{"payload": payload}).
		FirstOrCreate(&record)
	if res.Error != nil {
		return fmt.Errorf("failed to save state for key %s: %w", key, res.Error)
	}
	return nil
}
