// Package automatic plays the game against itself: the search engine
// picks every move, the game answers with random spawns. Self-play is
// how the heuristic weights get tuned: aggregate score and max-tile
// statistics over many games are the evidence a weight change has to
// move.
package automatic

import (
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/deeptile/twenty48/config"
	"github.com/deeptile/twenty48/expectimax"
	"github.com/deeptile/twenty48/game"
	"github.com/deeptile/twenty48/tables"
)

// GameResult records one finished self-play game.
type GameResult struct {
	Score   int
	MaxTile int
	Moves   int
	Elapsed time.Duration
}

// Runner drives consecutive self-play games with one solver.
type Runner struct {
	tables *tables.Tables
	solver *expectimax.Solver
	cfg    config.Autoplay

	results []GameResult
}

// NewRunner instantiates and initializes a runner.
func NewRunner(t *tables.Tables, solver *expectimax.Solver, cfg config.Autoplay) *Runner {
	return &Runner{tables: t, solver: solver, cfg: cfg}
}

// PlayGame runs a single game to completion and records its result.
// A fixed configured depth overrides the per-position recommendation.
func (r *Runner) PlayGame() (GameResult, error) {
	g := game.NewGame(r.tables)
	start := time.Now()

	for !g.Over() {
		depth := r.cfg.Depth
		if depth <= 0 {
			depth = expectimax.RecommendedDepth(g.Board())
		}
		ranked, err := r.solver.RankMoves(g.Board(), depth)
		if err != nil {
			return GameResult{}, err
		}
		best, ok := ranked.Best()
		if !ok {
			break
		}
		if err := g.PlayMove(best.Dir); err != nil {
			return GameResult{}, err
		}
	}

	result := GameResult{
		Score:   g.Score(),
		MaxTile: g.Board().MaxTile(),
		Moves:   g.Moves(),
		Elapsed: time.Since(start),
	}
	r.results = append(r.results, result)
	return result, nil
}

// Run plays the configured number of games, optionally recording each
// result into the configured sqlite database.
func (r *Runner) Run() error {
	var db *ResultDB
	if r.cfg.DBPath != "" {
		var err error
		db, err = OpenResultDB(r.cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	for i := 0; i < r.cfg.Games; i++ {
		result, err := r.PlayGame()
		if err != nil {
			return err
		}
		log.Info().
			Int("game", i+1).
			Int("score", result.Score).
			Int("max-tile", result.MaxTile).
			Int("moves", result.Moves).
			Float64("elapsed-sec", result.Elapsed.Seconds()).
			Msg("autoplay-game-over")
		if db != nil {
			if err := db.Record(result); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) Results() []GameResult { return r.results }

// Summary aggregates scores and max tiles across the played games.
type Summary struct {
	Games     int
	MeanScore float64
	StdDev    float64
	BestScore int
	Tiles     map[int]int // max tile -> game count
}

func (r *Runner) Summarize() Summary {
	s := Summary{Games: len(r.results), Tiles: map[int]int{}}
	if s.Games == 0 {
		return s
	}
	scores := make([]float64, len(r.results))
	for i, res := range r.results {
		scores[i] = float64(res.Score)
		if res.Score > s.BestScore {
			s.BestScore = res.Score
		}
		s.Tiles[res.MaxTile]++
	}
	s.MeanScore = stat.Mean(scores, nil)
	s.StdDev = stat.StdDev(scores, nil)
	return s
}

// PrintHistogram renders the score distribution of the played games.
func (r *Runner) PrintHistogram(w io.Writer) error {
	if len(r.results) < 2 {
		return nil
	}
	scores := make([]float64, len(r.results))
	for i, res := range r.results {
		scores[i] = float64(res.Score)
	}
	bins := 10
	if len(scores) < bins {
		bins = len(scores)
	}
	hist := histogram.Hist(bins, scores)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

func (s Summary) String() string {
	return fmt.Sprintf("games %d, mean score %.0f (σ %.0f), best %d",
		s.Games, s.MeanScore, s.StdDev, s.BestScore)
}
