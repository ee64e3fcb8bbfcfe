package storage

import (
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted blob: a storage key and its JSON value.
type Record struct {
	Key   string `gorm:"primaryKey;type:varchar(100)"`
	Value []byte `gorm:"type:blob"`
}

// GormStore is a Store backed by a database table of key/blob rows. It
// keeps the adapter's contract: read and write failures are logged and
// swallowed, never propagated to the caller.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new instance of GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get decodes the value stored under key into out.
func (s *GormStore) Get(key string, out any) bool {
	var rec Record
	if err := s.db.First(&rec, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("storage: error reading %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(rec.Value, out); err != nil {
		log.Printf("storage: error decoding %q: %v", key, err)
		return false
	}
	return true
}

// Set stores the JSON encoding of value under key, replacing any prior row.
func (s *GormStore) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("storage: error encoding %q: %v", key, err)
		return
	}
	rec := Record{Key: key, Value: raw}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
	if err != nil {
		log.Printf("storage: error writing %q: %v", key, err)
	}
}

// Remove deletes the row stored under key if present.
func (s *GormStore) Remove(key string) {
	if err := s.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		log.Printf("storage: error removing %q: %v", key, err)
	}
}

// Clear removes all stored rows.
func (s *GormStore) Clear() {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{}).Error; err != nil {
		log.Printf("storage: error clearing store: %v", err)
	}
}
