package automatic

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deeptile/twenty48/config"
	"github.com/deeptile/twenty48/expectimax"
	"github.com/deeptile/twenty48/tables"
)

func testRunner(t *testing.T, cfg config.Autoplay) *Runner {
	t.Helper()
	tbl := tables.New(config.DefaultConfig().Weights)
	searchCfg := config.DefaultConfig().Search
	searchCfg.TableMemFraction = 0
	solver := expectimax.NewSolver(tbl, searchCfg)
	return NewRunner(tbl, solver, cfg)
}

func TestPlayGameCompletes(t *testing.T) {
	// Depth 1 keeps the game fast; the point is that it terminates
	// with a coherent result, not that it plays well.
	r := testRunner(t, config.Autoplay{Games: 1, Depth: 1})
	result, err := r.PlayGame()
	require.NoError(t, err)
	assert.Greater(t, result.Score, 0)
	assert.GreaterOrEqual(t, result.MaxTile, 4)
	assert.Greater(t, result.Moves, 0)
}

func TestRunAndSummarize(t *testing.T) {
	r := testRunner(t, config.Autoplay{Games: 3, Depth: 1})
	require.NoError(t, r.Run())
	require.Len(t, r.Results(), 3)

	summary := r.Summarize()
	assert.Equal(t, 3, summary.Games)
	assert.Greater(t, summary.MeanScore, 0.0)
	assert.Greater(t, summary.BestScore, 0)

	total := 0
	for _, count := range summary.Tiles {
		total += count
	}
	assert.Equal(t, 3, total)

	var buf bytes.Buffer
	require.NoError(t, r.PrintHistogram(&buf))
	assert.NotEmpty(t, buf.String())
}

func TestResultDBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	db, err := OpenResultDB(path)
	require.NoError(t, err)
	defer db.Close()

	want := GameResult{Score: 12345, MaxTile: 1024, Moves: 700, Elapsed: 90 * time.Second}
	require.NoError(t, db.Record(want))
	require.NoError(t, db.Record(GameResult{Score: 1, MaxTile: 64, Moves: 50}))

	results, err := db.Recent(1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Score) // newest first

	results, err = db.Recent(10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, want, results[1])
}
