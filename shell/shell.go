// Package shell is the interactive front end: play moves by hand, ask
// the engine to rank a position, or let it play whole games by itself.
package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/deeptile/twenty48/automatic"
	"github.com/deeptile/twenty48/config"
	"github.com/deeptile/twenty48/expectimax"
	"github.com/deeptile/twenty48/game"
	"github.com/deeptile/twenty48/move"
	"github.com/deeptile/twenty48/tables"
)

// ShellController owns the one live game and the engine resources
// behind the prompt.
type ShellController struct {
	l *readline.Instance

	cfg    *config.Config
	tables *tables.Tables
	solver *expectimax.Solver
	game   *game.Game

	printer *message.Printer
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController builds the controller and all engine state.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtwenty48>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}

	t := tables.New(cfg.Weights)
	return &ShellController{
		l:       l,
		cfg:     cfg,
		tables:  t,
		solver:  expectimax.NewSolver(t, cfg.Search),
		game:    game.NewGame(t),
		printer: message.NewPrinter(language.English),
	}
}

// Loop reads and executes commands until exit or EOF.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	sc.showBoard()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields, err := shellquote.Split(line)
		if err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
			continue
		}
		if done := sc.execute(fields[0], fields[1:]); done {
			break
		}
	}
	log.Debug().Msg("exiting shell..")
}

func (sc *ShellController) execute(cmd string, args []string) bool {
	var err error
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		usage(sc.l.Stderr())
	case "new":
		sc.game = game.NewGame(sc.tables)
		sc.showBoard()
	case "show", "s":
		sc.showBoard()
	case "move", "m":
		err = sc.handleMove(args)
	case "rank", "r":
		err = sc.handleRank(args)
	case "hint":
		err = sc.handleHint()
	case "autoplay", "auto":
		err = sc.handleAutoplay(args)
	case "config":
		err = sc.handleConfig()
	default:
		showMessage("unknown command; try `help`", sc.l.Stderr())
	}
	if err != nil {
		showMessage("error: "+err.Error(), sc.l.Stderr())
	}
	return false
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new - start a new game\n")
	io.WriteString(w, "show (s) - print the current board and score\n")
	io.WriteString(w, "move (m) <up|down|left|right> - play a move\n")
	io.WriteString(w, "rank (r) [depth] - rank all four directions; depth defaults to the recommendation\n")
	io.WriteString(w, "hint - play the engine's best move for this position\n")
	io.WriteString(w, "autoplay [n] - let the engine play n games (default from config)\n")
	io.WriteString(w, "config - print the active configuration\n")
	io.WriteString(w, "exit - leave the shell\n")
}

func (sc *ShellController) showBoard() {
	out := sc.l.Stderr()
	io.WriteString(out, sc.game.Board().String())
	showMessage(sc.printer.Sprintf("score: %d  moves: %d  empty: %d",
		sc.game.Score(), sc.game.Moves(), sc.game.Board().CountEmpty()), out)
	if sc.game.Over() {
		showMessage("game over - no legal moves; `new` to restart", out)
	}
}

func (sc *ShellController) handleMove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("need a direction, e.g. `move left`")
	}
	d, err := move.Parse(args[0])
	if err != nil {
		return err
	}
	if err := sc.game.PlayMove(d); err != nil {
		return err
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handleRank(args []string) error {
	depth := expectimax.RecommendedDepth(sc.game.Board())
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad depth %q: %w", args[0], err)
		}
		depth = d
	}
	ranked, err := sc.solver.RankMoves(sc.game.Board(), depth)
	if err != nil {
		return err
	}
	out := sc.l.Stderr()
	if ranked.GameOver() {
		showMessage("no legal moves: game over", out)
		return nil
	}
	numLegal := lo.CountBy(ranked[:], func(rm expectimax.RankedMove) bool { return rm.Legal })
	showMessage(fmt.Sprintf("%d legal directions at depth %d:", numLegal, depth), out)
	for _, rm := range ranked {
		if !rm.Legal {
			showMessage(fmt.Sprintf("%6s  illegal", rm.Dir), out)
			continue
		}
		showMessage(sc.printer.Sprintf("%6s  %.0f", rm.Dir, rm.Score), out)
	}
	return nil
}

func (sc *ShellController) handleHint() error {
	depth := expectimax.RecommendedDepth(sc.game.Board())
	ranked, err := sc.solver.RankMoves(sc.game.Board(), depth)
	if err != nil {
		return err
	}
	best, ok := ranked.Best()
	if !ok {
		showMessage("no legal moves: game over", sc.l.Stderr())
		return nil
	}
	showMessage(fmt.Sprintf("playing %s (depth %d)", best.Dir, depth), sc.l.Stderr())
	if err := sc.game.PlayMove(best.Dir); err != nil {
		return err
	}
	sc.showBoard()
	return nil
}

func (sc *ShellController) handleAutoplay(args []string) error {
	cfg := sc.cfg.Autoplay
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("bad game count %q", args[0])
		}
		cfg.Games = n
	}
	runner := automatic.NewRunner(sc.tables, sc.solver, cfg)
	if err := runner.Run(); err != nil {
		return err
	}
	summary := runner.Summarize()
	out := sc.l.Stderr()
	showMessage(summary.String(), out)

	// Max-tile table, biggest tile first.
	for tile := 32768; tile >= 2; tile /= 2 {
		if count, ok := summary.Tiles[tile]; ok {
			showMessage(sc.printer.Sprintf("reached %d in %d/%d games", tile, count, summary.Games), out)
		}
	}
	return runner.PrintHistogram(out)
}

func (sc *ShellController) handleConfig() error {
	dump, err := sc.cfg.Dump()
	if err != nil {
		return err
	}
	_, err = io.WriteString(sc.l.Stderr(), dump)
	return err
}
