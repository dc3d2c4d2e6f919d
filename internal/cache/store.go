package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"
)

const (
	// BoltDB bucket name for storing fetched API payloads
	EntriesBucket = "apiPayloads"

	// FreshnessWindow is how long a stored payload is served without
	// re-fetching. Entries older than this behave as absent; they are never
	// purged, only overwritten by the next successful fetch.
	FreshnessWindow = 20 * time.Minute
)

// Clock supplies the wall-clock time for both writes and freshness checks.
// The same clock must be used for both, so tests can age entries without
// real time passing.
type Clock func() time.Time

// Store provides an interface for payload caching operations. Get never
// returns an error: a malformed or unreadable entry is indistinguishable
// from an absent one and simply triggers a fetch.
type Store interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, payload json.RawMessage) error
	Close() error
}

// entry is the stored form of a cached payload. Timestamp is the wall-clock
// time of the fetch that produced the payload, in epoch milliseconds.
type entry struct {
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// BoltStore implements Store using BoltDB for persistence across runs.
type BoltStore struct {
	db    *bbolt.DB
	clock Clock
	ttl   time.Duration
}

// NewBoltStore creates a new BoltDB-backed cache store using the real clock
// and the default freshness window.
func NewBoltStore(dbPath string) (*BoltStore, error) {
	return NewBoltStoreWithClock(dbPath, time.Now)
}

// NewBoltStoreWithClock creates a store whose freshness checks and write
// timestamps both come from the given clock.
func NewBoltStoreWithClock(dbPath string, clock Clock) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB at %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(EntriesBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	logrus.Debugf("BoltDB cache store initialized at: %s", dbPath)
	return &BoltStore{db: db, clock: clock, ttl: FreshnessWindow}, nil
}

// Get returns the payload stored under key if it is still within the
// freshness window. Expired, missing and malformed entries all report absent.
func (s *BoltStore) Get(key string) (json.RawMessage, bool) {
	var raw []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(EntriesBucket))
		if bucket == nil {
			return nil
		}
		if data := bucket.Get([]byte(key)); data != nil {
			raw = append(raw, data...)
		}
		return nil
	})
	if err != nil {
		logrus.Warnf("Failed to read cache key %s, treating as absent: %v", key, err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		logrus.Warnf("Malformed cache entry for key %s, treating as absent: %v", key, err)
		return nil, false
	}

	age := s.clock().UnixMilli() - e.Timestamp
	if age >= s.ttl.Milliseconds() {
		logrus.Debugf("Cache entry for key %s expired (%dms old)", key, age)
		return nil, false
	}

	return e.Payload, true
}

// Set overwrites the payload stored under key, stamped with the current
// clock time.
func (s *BoltStore) Set(key string, payload json.RawMessage) error {
	data, err := json.Marshal(entry{
		Payload:   payload,
		Timestamp: s.clock().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(EntriesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s does not exist", EntriesBucket)
		}
		return bucket.Put([]byte(key), data)
	})
}

// Close closes the BoltDB database.
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
