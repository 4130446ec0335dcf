package expectimax

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

// entrySize is the in-memory size of a TableEntry (8 + 8 + 1 + 1,
// padded to 24 by alignment).
const entrySize = 24

// minSizePowerOf2 floors the table at 2^16 entries so tiny memory
// fractions in tests still produce a usable table.
const minSizePowerOf2 = 16

// TableEntry memoizes one chance node. The board word is stored whole:
// a 4x4 position already fits in a machine word, so it is its own
// collision-free key and no separate hash is needed. Masking the word
// picks the bucket; comparing the stored word rejects bucket sharers.
type TableEntry struct {
	board uint64
	score float64
	depth uint8
	used  uint8
}

func (e TableEntry) valid() bool {
	return e.used != 0
}

// TranspositionTable caches chance-node values within one top-level
// ranking call. It is owned by exactly one in-flight search: the
// solver clears it on entry to every RankMoves call and never shares
// it across concurrent invocations, so no locking is needed on the
// lookup path. The counters are atomic only so a parallel root search
// can share them.
type TranspositionTable struct {
	table        []TableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
}

// lookup returns the cached score for b if one was stored at depth >=
// the requested depth.
func (t *TranspositionTable) lookup(b uint64, depth int) (float64, bool) {
	t.lookups.Add(1)
	entry := t.table[b&t.sizeMask]
	if !entry.valid() || entry.board != b || int(entry.depth) < depth {
		return 0, false
	}
	t.hits.Add(1)
	return entry.score, true
}

func (t *TranspositionTable) store(b uint64, depth int, score float64) {
	// Overwrite whatever shares the bucket; within one search the
	// newest value is the one most likely to be revisited.
	t.table[b&t.sizeMask] = TableEntry{
		board: b,
		score: score,
		depth: uint8(depth),
		used:  1,
	}
	t.created.Add(1)
}

// Reset sizes (or re-sizes) the table to the largest power of two that
// fits in the given fraction of system memory, and empties it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	desiredNElems := fractionOfMemory * (float64(memory.TotalMemory()) / float64(entrySize))
	t.sizePowerOf2 = minSizePowerOf2
	if desiredNElems > 1<<minSizePowerOf2 {
		t.sizePowerOf2 = int(math.Log2(desiredNElems))
	}

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	if len(t.table) == numElems {
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	log.Debug().
		Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
}

// clearForSearch empties the table without resizing. Called at the top
// of every ranking invocation; entries never survive between calls.
func (t *TranspositionTable) clearForSearch() {
	clear(t.table)
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
}
