package expectimax

import (
	"testing"

	"github.com/matryer/is"
)

func TestTTableEntry(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(0) // floors at the minimum size
	is.True(tt.sizePowerOf2 >= minSizePowerOf2)

	const key = uint64(0x1234500000000221)
	tt.store(key, 5, 1234.5)

	score, ok := tt.lookup(key, 5)
	is.True(ok)
	is.Equal(score, 1234.5)

	// A shallower request is satisfied by a deeper entry...
	_, ok = tt.lookup(key, 3)
	is.True(ok)
	// ...but a deeper request is not.
	_, ok = tt.lookup(key, 6)
	is.True(!ok)

	// A different board sharing the bucket must miss, never alias.
	collider := key + (uint64(tt.sizeMask) + 1)
	_, ok = tt.lookup(collider, 1)
	is.True(!ok)

	is.Equal(tt.lookups.Load(), uint64(4))
	is.Equal(tt.hits.Load(), uint64(2))

	tt.clearForSearch()
	_, ok = tt.lookup(key, 1)
	is.True(!ok)
}
