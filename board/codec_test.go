package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"
)

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 10000; i++ {
		var ranks [Dim][Dim]int
		for r := 0; r < Dim; r++ {
			for c := 0; c < Dim; c++ {
				ranks[r][c] = int(frand.Uint64n(12))
			}
		}
		b, err := FromRanks(ranks)
		is.NoErr(err)
		is.Equal(b.Ranks(), ranks)
	}
}

func TestFromRanksRejectsOutOfRange(t *testing.T) {
	is := is.New(t)
	var ranks [Dim][Dim]int
	ranks[1][2] = 16
	_, err := FromRanks(ranks)
	is.True(errors.Is(err, ErrInvalidCell))

	ranks[1][2] = -1
	_, err = FromRanks(ranks)
	is.True(errors.Is(err, ErrInvalidCell))
}

func TestFromValues(t *testing.T) {
	is := is.New(t)
	values := []int{
		2, 4, 0, 0,
		0, 8, 0, 0,
		0, 0, 1024, 0,
		0, 0, 0, 32768,
	}
	b, err := FromValues(values)
	is.NoErr(err)
	is.Equal(b.Rank(0, 0), 1)
	is.Equal(b.Rank(0, 1), 2)
	is.Equal(b.Rank(1, 1), 3)
	is.Equal(b.Rank(2, 2), 10)
	is.Equal(b.Rank(3, 3), 15)
	is.Equal(b.Values(), values)
}

func TestFromValuesRejectsMalformedInput(t *testing.T) {
	is := is.New(t)

	_, err := FromValues([]int{2, 4})
	is.True(errors.Is(err, ErrInvalidCell)) // wrong length

	bad := make([]int, NumCells)
	bad[5] = 3 // not a power of two
	_, err = FromValues(bad)
	is.True(errors.Is(err, ErrInvalidCell))

	bad[5] = 65536 // exceeds the nibble width
	_, err = FromValues(bad)
	is.True(errors.Is(err, ErrInvalidCell))

	bad[5] = 1 // 2^0 is not a tile
	_, err = FromValues(bad)
	is.True(errors.Is(err, ErrInvalidCell))
}
