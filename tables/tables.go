// Package tables builds the row transition and heuristic lookup
// tables. Every possible 16-bit row value gets a precomputed left
// slide, right slide, merge score, and positional heuristic
// contribution, so that simulating a move costs four lookups and
// evaluating a full board costs eight.
//
// Tables are built once, before any search runs, and are read-only
// afterwards; a single instance may be shared by any number of
// concurrent searches.
package tables

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deeptile/twenty48/board"
	"github.com/deeptile/twenty48/config"
)

const numRows = 1 << 16

// Tables holds the four per-row lookup tables and the weights they
// were built with.
type Tables struct {
	left  [numRows]board.Row
	right [numRows]board.Row
	score [numRows]uint32
	heur  [numRows]float64

	weights config.Weights
}

// New constructs the tables for the given heuristic weights. This is
// the one-time initialization step the host performs before first use.
func New(weights config.Weights) *Tables {
	start := time.Now()
	t := &Tables{weights: weights}
	for rv := 0; rv < numRows; rv++ {
		row := board.Row(rv)
		nibbles := unpackRow(row)

		t.heur[rv] = lineHeuristic(nibbles, weights)

		left, score := slideLeft(nibbles)
		t.left[rv] = packRow(left)
		t.score[rv] = score

		// The right slide is the mirror image of the left slide.
		reversed := unpackRow(row.Reverse())
		rmerged, _ := slideLeft(reversed)
		t.right[rv] = packRow(rmerged).Reverse()
	}
	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("rows", numRows).
		Msg("built-row-tables")
	return t
}

// Weights returns the weights the tables were built with.
func (t *Tables) Weights() config.Weights { return t.weights }

func unpackRow(r board.Row) [4]int {
	return [4]int{
		int(r & 0xF),
		int(r >> 4 & 0xF),
		int(r >> 8 & 0xF),
		int(r >> 12 & 0xF),
	}
}

func packRow(n [4]int) board.Row {
	return board.Row(n[0] | n[1]<<4 | n[2]<<8 | n[3]<<12)
}

// slideLeft compacts the non-empty nibbles toward index 0, then merges
// adjacent equal pairs left to right. Each nibble merges at most once:
// [1,1,1,1] becomes [2,2,0,0], never a triple merge. The score is the
// sum of 2^rank over the tiles created by merging, i.e. the points the
// real game awards for the slide.
func slideLeft(nibbles [4]int) ([4]int, uint32) {
	var line [4]int
	w := 0
	for _, v := range nibbles {
		if v != 0 {
			line[w] = v
			w++
		}
	}

	var out [4]int
	var score uint32
	i, o := 0, 0
	for i < 4 && line[i] != 0 {
		if i+1 < 4 && line[i] == line[i+1] {
			merged := line[i] + 1
			score += 1 << uint(merged)
			if merged > board.MaxRank {
				merged = board.MaxRank
			}
			out[o] = merged
			i += 2
		} else {
			out[o] = line[i]
			i++
		}
		o++
	}
	return out, score
}

// lineHeuristic computes one line's contribution to the positional
// evaluation. The lost baseline is folded in here, once per line, so a
// live board always outscores the terminal score of zero.
func lineHeuristic(nibbles [4]int, w config.Weights) float64 {
	var empty, merges, sum float64
	var monoLeft, monoRight float64
	prev, run := 0, 0

	for i, v := range nibbles {
		if v == 0 {
			empty++
		} else {
			sum += math.Pow(float64(v), w.SumPow)
			// Merge potential counts runs of equal tiles: a run of
			// length k contributes k, ignoring empties in between.
			if prev == v {
				run++
			} else {
				if run > 0 {
					merges += 1 + float64(run)
				}
				run = 0
			}
			prev = v
		}
		if i > 0 {
			a := math.Pow(float64(nibbles[i-1]), w.MonoPow)
			b := math.Pow(float64(v), w.MonoPow)
			if nibbles[i-1] > v {
				monoLeft += a - b
			} else if v > nibbles[i-1] {
				monoRight += b - a
			}
		}
	}
	if run > 0 {
		merges += 1 + float64(run)
	}

	return w.Lost +
		w.Empty*empty +
		w.Merges*merges -
		w.Mono*math.Min(monoLeft, monoRight) -
		w.Sum*sum
}
