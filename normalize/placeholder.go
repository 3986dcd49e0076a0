package normalize

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/bingLAN/chart_driver/catalog"
)

// Placeholder supplies the preview value of an empty manual cell. key
// identifies the cell.
type Placeholder interface {
	Value(key string) float64
}

type PlaceholderFunc func(key string) float64

func (f PlaceholderFunc) Value(key string) float64 {
	return f(key)
}

// SeededPlaceholder derives a value in [PlaceholderMin, PlaceholderMax]
// from the seed and the cell key, so the same cell always previews the same
// value.
type SeededPlaceholder struct {
	seed uint64
}

func NewSeededPlaceholder(seed int64) SeededPlaceholder {
	return SeededPlaceholder{seed: uint64(seed)}
}

func (p SeededPlaceholder) Value(key string) float64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], p.seed)
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(key))
	span := uint64(catalog.PlaceholderMax - catalog.PlaceholderMin + 1)
	return float64(catalog.PlaceholderMin + int(h.Sum64()%span))
}
