package tables

import (
	"github.com/deeptile/twenty48/board"
	"github.com/deeptile/twenty48/move"
)

// Apply slides the board in the given direction. It returns the
// resulting board, the points earned by the merges the slide performed,
// and whether the board changed at all. An unchanged board means the
// direction is illegal from this position and must not be ranked.
//
// Horizontal moves are four table lookups. Vertical moves transpose
// once, look up the four columns as rows, and reassemble via the
// column-unpack trick instead of transposing back.
func (t *Tables) Apply(b board.Board, d move.Direction) (board.Board, int, bool) {
	var next board.Board
	var points uint32

	switch d {
	case move.Up:
		tr := b.Transpose()
		for i := 0; i < board.Dim; i++ {
			row := tr.GetRow(i)
			next |= t.left[row].UnpackCol() << (uint(i) * 4)
			points += t.score[row]
		}
	case move.Down:
		tr := b.Transpose()
		for i := 0; i < board.Dim; i++ {
			row := tr.GetRow(i)
			next |= t.right[row].UnpackCol() << (uint(i) * 4)
			points += t.score[row.Reverse()]
		}
	case move.Left:
		for i := 0; i < board.Dim; i++ {
			row := b.GetRow(i)
			next = next.WithRow(i, t.left[row])
			points += t.score[row]
		}
	case move.Right:
		for i := 0; i < board.Dim; i++ {
			row := b.GetRow(i)
			next = next.WithRow(i, t.right[row])
			points += t.score[row.Reverse()]
		}
	default:
		// A direction outside the enumeration is a programming fault,
		// not a runtime condition.
		panic("tables: impossible direction")
	}

	return next, int(points), next != b
}

// HasMove reports whether any direction changes the board. A board
// with no legal move is the terminal, game-over state.
func (t *Tables) HasMove(b board.Board) bool {
	for _, d := range move.All {
		if _, _, moved := t.Apply(b, d); moved {
			return true
		}
	}
	return false
}
