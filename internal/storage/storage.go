package storage

import (
	"encoding/json"
	"log"
	"sync"
)

// Well-known storage keys. Each key holds one JSON-encoded collection or
// value owned by the browser-session side of the system.
const (
	KeyCart            = "cart"
	KeyWishlist        = "userWishlist"
	KeyOrders          = "userOrders"
	KeyAddresses       = "userAddresses"
	KeySelectedAddress = "selectedAddress"
	KeySession         = "mockAuthUser"
)

// Store is the local persistence adapter: JSON blobs by key. Failures are
// logged and swallowed; callers never receive an error from these calls,
// and a failed write leaves the caller's in-memory state authoritative.
type Store interface {
	// Get decodes the value stored under key into out and reports whether
	// a value was present and decodable.
	Get(key string, out any) bool
	Set(key string, value any)
	Remove(key string)
	Clear()
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get decodes the value stored under key into out.
func (s *MemoryStore) Get(key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("storage: error decoding %q: %v", key, err)
		return false
	}
	return true
}

// Set stores the JSON encoding of value under key.
func (s *MemoryStore) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("storage: error encoding %q: %v", key, err)
		return
	}
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
}

// Remove deletes the value stored under key if present.
func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// Clear removes all stored values.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.values = make(map[string][]byte)
	s.mu.Unlock()
}
