package expectimax

import (
	"github.com/deeptile/twenty48/board"
	"github.com/deeptile/twenty48/move"
	"github.com/deeptile/twenty48/tables"
)

// Spawn probabilities of the game's stochastic tile rule.
const (
	probRank1 = 0.9
	probRank2 = 0.1
)

// worker is the per-goroutine state of one search: the shared
// read-only tables, a privately owned transposition table, and the
// pruning threshold. Depth and cumulative probability are explicit
// parameters threaded through the recursion, never shared state.
type worker struct {
	tables    *tables.Tables
	tt        *TranspositionTable
	pruneProb float64
	nodes     uint64
}

// scoreMoveNode is the maximizing player's turn: the best chance-node
// value over the directions that change the board. If nothing changes
// the board the position is terminal and scores the game-over value.
//
// Depth decrements only on the move->chance edge; depth counts plies
// of player choice, not raw tree levels.
func (w *worker) scoreMoveNode(b board.Board, depth int, cprob float64) float64 {
	best := tables.GameOverScore
	for _, d := range move.All {
		next, _, moved := w.tables.Apply(b, d)
		if !moved {
			continue
		}
		w.nodes++
		if v := w.scoreChanceNode(next, depth-1, cprob); v > best {
			best = v
		}
	}
	return best
}

// scoreChanceNode averages over every spawn the game could answer
// with: for each empty cell, a rank-1 tile at 0.9 and a rank-2 tile at
// 0.1. Once the cumulative probability of reaching this node falls
// below the pruning threshold the branch's contribution to the root
// expectation is negligible, so it is settled with the static
// evaluator instead of being expanded.
func (w *worker) scoreChanceNode(b board.Board, depth int, cprob float64) float64 {
	if cprob < w.pruneProb || depth <= 0 {
		return w.tables.Evaluate(b)
	}

	if score, ok := w.tt.lookup(uint64(b), depth); ok {
		return score
	}

	numOpen := b.CountEmpty()
	if numOpen == 0 {
		return w.tables.Evaluate(b)
	}
	cprob /= float64(numOpen)

	total := 0.0
	for i := 0; i < board.NumCells; i++ {
		shift := uint(i) * 4
		if (b>>shift)&0xF != 0 {
			continue
		}
		total += probRank1 * w.scoreMoveNode(b|board.Board(1)<<shift, depth, cprob*probRank1)
		total += probRank2 * w.scoreMoveNode(b|board.Board(2)<<shift, depth, cprob*probRank2)
	}
	result := total / float64(numOpen)

	w.tt.store(uint64(b), depth, result)
	return result
}
