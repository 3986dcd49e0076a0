// Package store persists option records. Every record is one keyed blob that
// is read and written as a whole; concurrent writers race last-write-wins.
package store

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrNotFound is returned by Get for keys that were never written.
	ErrNotFound = errors.New("option not found")
	// ErrInvalidKey is returned for empty option names.
	ErrInvalidKey = errors.New("invalid option key")
)

// Store is the key-value option store.
type Store interface {
	// Get decodes the record stored under key into out.
	Get(ctx context.Context, key string, out interface{}) error
	// Set replaces the record stored under key.
	Set(ctx context.Context, key string, value interface{}) error
}

func encode(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

func decode(data []byte, out interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// GetOr is Get with ErrNotFound mapped to a nil error, leaving out untouched.
func GetOr(ctx context.Context, s Store, key string, out interface{}) error {
	err := s.Get(ctx, key, out)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
