// Package expectimax ranks the four slide directions of a position by
// expected long-term value. The search alternates move nodes (the
// player picks the best direction) and chance nodes (the game spawns a
// rank-1 tile with probability 0.9 or a rank-2 tile with probability
// 0.1 on a uniformly random empty cell), bounded by depth and by
// probability pruning, and memoized per call in a transposition table.
package expectimax

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/deeptile/twenty48/board"
	"github.com/deeptile/twenty48/config"
	"github.com/deeptile/twenty48/move"
	"github.com/deeptile/twenty48/tables"
)

// ErrInvalidInput is wrapped by every rejected ranking request.
var ErrInvalidInput = errors.New("invalid input")

// IllegalScore is the sentinel reported for a direction that does not
// change the board. It compares below every reachable expectation, so
// an illegal direction is never chosen while a legal one exists.
var IllegalScore = math.Inf(-1)

// RankedMove is one direction's outcome for a ranking call.
type RankedMove struct {
	Dir   move.Direction
	Score float64
	Legal bool
}

// RankedMoves holds all four directions, best first. Equal scores are
// broken by the fixed direction enumeration order, so identical inputs
// always produce identical rankings.
type RankedMoves [4]RankedMove

// Best returns the highest-ranked legal direction.
func (r RankedMoves) Best() (RankedMove, bool) {
	if !r[0].Legal {
		return RankedMove{}, false
	}
	return r[0], true
}

// GameOver reports the no-legal-move terminal outcome. It is a normal
// result, not an error; the caller should treat it as game over.
func (r RankedMoves) GameOver() bool {
	_, ok := r.Best()
	return !ok
}

// Solver owns the searched resources: the shared read-only tables and
// one transposition table per potential root worker. A Solver is meant
// for sequential use; concurrent callers should each construct their
// own (the tables may be shared freely).
type Solver struct {
	tables *tables.Tables
	cfg    config.Search

	ttables [4]*TranspositionTable
	nodes   atomic.Uint64
}

// NewSolver allocates a solver and its transposition tables. With
// ParallelRoot set, each root direction gets a private table sized to
// a quarter share; otherwise a single table takes the whole fraction.
func NewSolver(t *tables.Tables, cfg config.Search) *Solver {
	s := &Solver{tables: t, cfg: cfg}
	if cfg.ParallelRoot {
		for i := range s.ttables {
			s.ttables[i] = &TranspositionTable{}
			s.ttables[i].Reset(cfg.TableMemFraction / 4)
		}
	} else {
		s.ttables[0] = &TranspositionTable{}
		s.ttables[0].Reset(cfg.TableMemFraction)
	}
	return s
}

// AdaptiveDepth raises the requested depth to at least two below the
// number of distinct ranks on the board. Positions carrying many
// distinct tiles need deeper lookahead to resolve their merge chains.
func AdaptiveDepth(b board.Board, requested int) int {
	distinct := b.DistinctRanks()
	floor := 2
	if distinct >= 4 {
		floor = distinct - 2
	}
	if requested > floor {
		return requested
	}
	return floor
}

// RecommendedDepth is the depth a move-by-move driver should request
// for this position: empty boards search shallow and fast, crowded
// late-game boards spend the depth where it is the critical resource.
func RecommendedDepth(b board.Board) int {
	maxTile := b.MaxTile()
	empty := b.CountEmpty()
	switch {
	case maxTile >= 1024:
		switch {
		case empty >= 8:
			return 7
		case empty >= 4:
			return 8
		default:
			return 9
		}
	case maxTile >= 512:
		switch {
		case empty >= 4:
			return 7
		default:
			return 8
		}
	default:
		switch {
		case empty >= 10:
			return 5
		case empty >= 6:
			return 6
		default:
			return 7
		}
	}
}

// RankMoves scores all four directions of b at the given search depth.
// Depth counts plies of player choice. The transposition tables are
// cleared on entry; nothing is remembered between calls.
func (s *Solver) RankMoves(b board.Board, depth int) (RankedMoves, error) {
	var ranked RankedMoves
	if depth < 1 {
		return ranked, fmt.Errorf("%w: depth %d is not positive", ErrInvalidInput, depth)
	}

	start := time.Now()
	searchDepth := AdaptiveDepth(b, depth)
	s.nodes.Store(0)
	for _, tt := range s.ttables {
		if tt != nil {
			tt.clearForSearch()
		}
	}

	var err error
	if s.cfg.ParallelRoot {
		ranked, err = s.rankParallel(b, searchDepth)
	} else {
		ranked = s.rankSerial(b, searchDepth)
	}
	if err != nil {
		return ranked, err
	}

	sortRanked(&ranked)

	log.Debug().
		Int("requested-depth", depth).
		Int("search-depth", searchDepth).
		Uint64("nodes", s.nodes.Load()).
		Uint64("ttable-lookups", s.ttables[0].lookups.Load()).
		Uint64("ttable-hits", s.ttables[0].hits.Load()).
		Uint64("ttable-created", s.ttables[0].created.Load()).
		Float64("time-elapsed-sec", time.Since(start).Seconds()).
		Bool("game-over", ranked.GameOver()).
		Msg("rank-moves")

	return ranked, nil
}

func (s *Solver) rankSerial(b board.Board, depth int) RankedMoves {
	var ranked RankedMoves
	w := &worker{
		tables:    s.tables,
		tt:        s.ttables[0],
		pruneProb: s.cfg.PruneThreshold,
	}
	for i, d := range move.All {
		ranked[i] = s.scoreRoot(w, b, d, depth)
	}
	s.nodes.Add(w.nodes)
	return ranked
}

// rankParallel searches each root direction on its own goroutine with
// a private transposition table, so no direction ever reads a value a
// sibling memoized at greater depth.
func (s *Solver) rankParallel(b board.Board, depth int) (RankedMoves, error) {
	var ranked RankedMoves
	g := errgroup.Group{}
	for i, d := range move.All {
		i, d := i, d
		g.Go(func() error {
			w := &worker{
				tables:    s.tables,
				tt:        s.ttables[i],
				pruneProb: s.cfg.PruneThreshold,
			}
			ranked[i] = s.scoreRoot(w, b, d, depth)
			s.nodes.Add(w.nodes)
			return nil
		})
	}
	err := g.Wait()
	return ranked, err
}

// scoreRoot evaluates one root direction: the points the slide itself
// earns plus the expected value of the resulting chance node one ply
// down.
func (s *Solver) scoreRoot(w *worker, b board.Board, d move.Direction, depth int) RankedMove {
	next, points, moved := s.tables.Apply(b, d)
	if !moved {
		return RankedMove{Dir: d, Score: IllegalScore, Legal: false}
	}
	value := float64(points) + w.scoreChanceNode(next, depth-1, 1.0)
	return RankedMove{Dir: d, Score: value, Legal: true}
}

func sortRanked(r *RankedMoves) {
	sort.SliceStable(r[:], func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		return r[i].Dir < r[j].Dir
	})
}

// RankValues is the flat boundary for callers that track the on-screen
// grid: sixteen row-major tile face values and a requested depth. It
// fails fast on malformed input.
func (s *Solver) RankValues(values []int, depth int) (RankedMoves, error) {
	b, err := board.FromValues(values)
	if err != nil {
		return RankedMoves{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.RankMoves(b, depth)
}
