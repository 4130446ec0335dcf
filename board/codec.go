package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidCell is wrapped by every codec failure caused by a cell
// that does not denote a representable tile.
var ErrInvalidCell = errors.New("invalid cell")

// NumCells is the length the flat tile-value boundary expects.
const NumCells = Dim * Dim

// FromRanks packs a 4x4 grid of exponents into a Board. Ranks must lie
// in [0, MaxRank].
func FromRanks(ranks [Dim][Dim]int) (Board, error) {
	var b Board
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			v := ranks[r][c]
			if v < 0 || v > MaxRank {
				return 0, fmt.Errorf("%w: rank %d at (%d,%d) out of range", ErrInvalidCell, v, r, c)
			}
			b = b.WithRank(r, c, v)
		}
	}
	return b, nil
}

// Ranks unpacks the board back into a grid of exponents. It is the
// exact inverse of FromRanks for every valid grid.
func (b Board) Ranks() [Dim][Dim]int {
	var ranks [Dim][Dim]int
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			ranks[r][c] = b.Rank(r, c)
		}
	}
	return ranks
}

// rankOf converts a face value (0, 2, 4, 8, ...) to its exponent.
func rankOf(value int) (int, error) {
	if value == 0 {
		return 0, nil
	}
	if value < 2 || bits.OnesCount(uint(value)) != 1 {
		return 0, fmt.Errorf("%w: %d is not a power of two", ErrInvalidCell, value)
	}
	rank := bits.TrailingZeros(uint(value))
	if rank > MaxRank {
		return 0, fmt.Errorf("%w: tile %d exceeds the representable rank", ErrInvalidCell, value)
	}
	return rank, nil
}

// FromValues packs a flat, row-major slice of sixteen tile face values
// into a Board. This is the boundary format the automation layer
// supplies; it fails fast on a wrong length or a non-power-of-two cell
// rather than guessing.
func FromValues(values []int) (Board, error) {
	if len(values) != NumCells {
		return 0, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidCell, len(values), NumCells)
	}
	var b Board
	for i, v := range values {
		rank, err := rankOf(v)
		if err != nil {
			return 0, fmt.Errorf("cell %d: %w", i, err)
		}
		b = b.WithRank(i/Dim, i%Dim, rank)
	}
	return b, nil
}

// Values flattens the board into sixteen row-major tile face values.
func (b Board) Values() []int {
	values := make([]int, NumCells)
	for i := range values {
		rank := b.Rank(i/Dim, i%Dim)
		if rank != 0 {
			values[i] = 1 << uint(rank)
		}
	}
	return values
}
