// Package store is the local key/value store holding the serialized
// library and user themes. Each key maps to one whole blob.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Keys used by aethernote.
const (
	KeyState  = "aethernote.state"
	KeyThemes = "aethernote.themes"
)

const bucketKV = "kv"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("no such key")

// Store is implemented by DB and Mem.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// DB is a bbolt-backed store.
type DB struct {
	db *bolt.DB
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKV))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	return &DB{db: db}, nil
}

// Get returns a copy of the value stored under key.
func (s *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketKV)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Put overwrites the value stored under key.
func (s *DB) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).Put([]byte(key), value)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *DB) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).Delete([]byte(key))
	})
}

// Keys lists every stored key in byte order.
func (s *DB) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketKV)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Path returns the database file path.
func (s *DB) Path() string {
	return s.db.Path()
}

// Close releases the database file lock.
func (s *DB) Close() error {
	return s.db.Close()
}
