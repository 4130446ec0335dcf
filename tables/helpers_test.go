package tables

import (
	"lukechampine.com/frand"

	"github.com/deeptile/twenty48/board"
)

// FromValuesGrid builds a board from a 4x4 grid of tile face values.
// Test fixtures read much better as face values than as exponents.
func FromValuesGrid(grid [4][4]int) (board.Board, error) {
	flat := make([]int, 0, board.NumCells)
	for _, row := range grid {
		flat = append(flat, row[:]...)
	}
	return board.FromValues(flat)
}

func randomTestBoard() board.Board {
	var b board.Board
	for r := 0; r < board.Dim; r++ {
		for c := 0; c < board.Dim; c++ {
			// Mostly empty with a spread of ranks, like real positions.
			if frand.Uint64n(3) == 0 {
				b = b.WithRank(r, c, int(frand.Uint64n(8)+1))
			}
		}
	}
	return b
}
