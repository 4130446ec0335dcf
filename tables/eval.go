package tables

import (
	"github.com/deeptile/twenty48/board"
)

// GameOverScore is what a position with no legal moves is worth. The
// lost baseline folded into every line's heuristic guarantees that any
// playable position evaluates strictly above this.
const GameOverScore = 0.0

// Evaluate scores a position statically: the per-line heuristic summed
// over the four rows and, via one transpose, the four columns (eight
// table lookups), plus a board-level adjustment for where the largest
// tile sits once it is worth keeping anchored (rank 7, a 128, and up).
func (t *Tables) Evaluate(b board.Board) float64 {
	tr := b.Transpose()
	score := 0.0
	for i := 0; i < board.Dim; i++ {
		score += t.heur[b.GetRow(i)]
		score += t.heur[tr.GetRow(i)]
	}
	return score + t.maxTileAdjustment(b)
}

func (t *Tables) maxTileAdjustment(b board.Board) float64 {
	maxRank, maxRow, maxCol := 0, 0, 0
	for r := 0; r < board.Dim; r++ {
		for c := 0; c < board.Dim; c++ {
			if v := b.Rank(r, c); v > maxRank {
				maxRank, maxRow, maxCol = v, r, c
			}
		}
	}
	if maxRank < 7 {
		return 0
	}

	mr := float64(maxRank)
	onRowEdge := maxRow == 0 || maxRow == board.Dim-1
	onColEdge := maxCol == 0 || maxCol == board.Dim-1
	switch {
	case onRowEdge && onColEdge:
		return mr * mr * t.weights.Corner
	case onRowEdge || onColEdge:
		return -mr * mr * t.weights.Edge
	default:
		return -mr * mr * t.weights.Center
	}
}
