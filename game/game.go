// Package game holds a playable game state on top of the immutable
// board: the running score, the move counter, and the stochastic tile
// spawns. The search engine itself never touches this package; it
// exists for the shell and the self-play runner.
package game

import (
	"errors"

	"lukechampine.com/frand"

	"github.com/deeptile/twenty48/board"
	"github.com/deeptile/twenty48/move"
	"github.com/deeptile/twenty48/tables"
)

// ErrIllegalMove is returned when a slide does not change the board.
var ErrIllegalMove = errors.New("illegal move")

// Game is one session of the sliding-tile game.
type Game struct {
	tables *tables.Tables

	board board.Board
	score int
	moves int
}

// NewGame starts a fresh game with the customary two spawned tiles.
func NewGame(t *tables.Tables) *Game {
	g := &Game{tables: t}
	g.SpawnTile()
	g.SpawnTile()
	return g
}

// NewGameFromBoard adopts an existing position with a known score.
func NewGameFromBoard(t *tables.Tables, b board.Board, score int) *Game {
	return &Game{tables: t, board: b, score: score}
}

func (g *Game) Board() board.Board { return g.board }
func (g *Game) Score() int         { return g.score }
func (g *Game) Moves() int         { return g.moves }

// PlayMove slides the board, accumulates the merge points, and answers
// with the game's random spawn. Illegal slides leave the game
// untouched.
func (g *Game) PlayMove(d move.Direction) error {
	next, points, moved := g.tables.Apply(g.board, d)
	if !moved {
		return ErrIllegalMove
	}
	g.board = next
	g.score += points
	g.moves++
	g.SpawnTile()
	return nil
}

// SpawnTile places a rank-1 tile with probability 0.9, rank-2 with
// probability 0.1, on a uniformly random empty cell. It is a no-op on
// a full board.
func (g *Game) SpawnTile() {
	empty := g.board.CountEmpty()
	if empty == 0 {
		return
	}
	target := int(frand.Uint64n(uint64(empty)))
	rank := 1
	if frand.Uint64n(10) == 0 {
		rank = 2
	}
	for i := 0; i < board.NumCells; i++ {
		if g.board.Rank(i/board.Dim, i%board.Dim) != 0 {
			continue
		}
		if target == 0 {
			g.board = g.board.WithRank(i/board.Dim, i%board.Dim, rank)
			return
		}
		target--
	}
}

// Over reports whether no direction changes the board.
func (g *Game) Over() bool {
	return !g.tables.HasMove(g.board)
}
