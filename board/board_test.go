package board

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"
)

func randomBoard() Board {
	// Random nibbles, capped at rank 12 so the boards stay realistic.
	var b Board
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			b = b.WithRank(r, c, int(frand.Uint64n(13)))
		}
	}
	return b
}

func TestRankAccessors(t *testing.T) {
	is := is.New(t)
	var b Board
	b = b.WithRank(0, 0, 3)
	b = b.WithRank(2, 3, 11)
	b = b.WithRank(3, 3, 15)
	is.Equal(b.Rank(0, 0), 3)
	is.Equal(b.Rank(2, 3), 11)
	is.Equal(b.Rank(3, 3), 15)
	is.Equal(b.Rank(1, 1), 0)

	// Overwriting a cell must clear the old nibble.
	b = b.WithRank(2, 3, 1)
	is.Equal(b.Rank(2, 3), 1)
}

func TestTransposeInvolution(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 10000; i++ {
		b := randomBoard()
		is.Equal(b.Transpose().Transpose(), b)
	}
}

func TestTransposeMovesCells(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 1000; i++ {
		b := randomBoard()
		tr := b.Transpose()
		for r := 0; r < Dim; r++ {
			for c := 0; c < Dim; c++ {
				is.Equal(tr.Rank(c, r), b.Rank(r, c))
			}
		}
	}
}

func TestRowReverse(t *testing.T) {
	is := is.New(t)
	is.Equal(Row(0x1234).Reverse(), Row(0x4321))
	is.Equal(Row(0x0001).Reverse(), Row(0x1000))
	is.Equal(Row(0xFFFF).Reverse(), Row(0xFFFF))
	is.Equal(Row(0).Reverse(), Row(0))
}

func TestUnpackCol(t *testing.T) {
	is := is.New(t)
	b := Row(0x4321).UnpackCol()
	is.Equal(b.Rank(0, 0), 1)
	is.Equal(b.Rank(1, 0), 2)
	is.Equal(b.Rank(2, 0), 3)
	is.Equal(b.Rank(3, 0), 4)
	is.Equal(b & ^ColMask, Board(0))
}

func TestCountEmpty(t *testing.T) {
	is := is.New(t)
	is.Equal(Board(0).CountEmpty(), 16)
	full, err := FromRanks([Dim][Dim]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	})
	is.NoErr(err)
	is.Equal(full.CountEmpty(), 0)

	for i := 0; i < 1000; i++ {
		b := randomBoard()
		naive := 0
		for r := 0; r < Dim; r++ {
			for c := 0; c < Dim; c++ {
				if b.Rank(r, c) == 0 {
					naive++
				}
			}
		}
		is.Equal(b.CountEmpty(), naive)
	}
}

func TestDistinctRanks(t *testing.T) {
	is := is.New(t)
	is.Equal(Board(0).DistinctRanks(), 0)
	b, err := FromRanks([Dim][Dim]int{
		{1, 1, 2, 0},
		{0, 0, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 5},
	})
	is.NoErr(err)
	is.Equal(b.DistinctRanks(), 3)
	is.Equal(b.MaxRank(), 5)
	is.Equal(b.MaxTile(), 32)
}
