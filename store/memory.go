package store

import (
	"context"

	cmap "github.com/orcaman/concurrent-map"
)

// MemoryStore keeps records in process. Values are stored encoded so callers
// never share maps with the store.
type MemoryStore struct {
	records cmap.ConcurrentMap // key---[]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: cmap.New()}
}

func (m *MemoryStore) Get(ctx context.Context, key string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, ok := m.records.Get(key)
	if !ok {
		return ErrNotFound
	}
	return decode(v.([]byte), out)
}

func (m *MemoryStore) Set(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrInvalidKey
	}
	data, err := encode(value)
	if err != nil {
		return err
	}
	m.records.Set(key, data)
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(key string) {
	m.records.Remove(key)
}
