// flappy is a Flappy Bird clone with a persistent top-5 leaderboard.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy gui               - Play in a window (vector or widget mode)
//	flappy scores            - Show or reset the leaderboard
//	flappy presets           - Show the difficulty presets
//	flappy list              - List available front ends
//
// Global flags:
//
//	--config <path>       - Settings file (default: ~/.flappy.yaml or ./.flappy.yaml)
//	--leaderboard <path>  - Leaderboard file (default: ~/.flappy/highscores.txt)
//	--backend <name>      - Leaderboard backend: file or sqlite
//	--difficulty <name>   - Starting difficulty: easy, normal, hard
//	--seed <value>        - RNG seed for reproducible pipe gaps
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/host"
	"github.com/vovakirdan/flappy/internal/leaderboard"
	"github.com/vovakirdan/flappy/internal/registry"
	"github.com/vovakirdan/flappy/internal/storage"
)

var flagConfig string

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal or a window",
	Long: `Flappy Bird with a persistent top-5 leaderboard. Play it in the
terminal or in a desktop window; both share the same rules and scores.

Available commands:
  play     - Play in the terminal
  gui      - Play in a desktop window
  scores   - View or reset high scores
  presets  - Show difficulty presets
  list     - Show available front ends

Settings are read from flags, FLAPPY_* environment variables and
~/.flappy.yaml, in that order.

Examples:
  flappy play
  flappy play --difficulty hard
  flappy gui --mode widget
  flappy scores --backend sqlite --leaderboard ~/.flappy/scores.db
  flappy play --seed 42`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.InitSettings(flagConfig)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to settings file")
	flags.String(config.KeyLeaderboard, "~/.flappy/highscores.txt", "Leaderboard file or database path")
	flags.String(config.KeyBackend, config.BackendFile, "Leaderboard backend: file, sqlite")
	flags.String(config.KeyDifficulty, string(config.DifficultyNormal), "Starting difficulty: easy, normal, hard")
	flags.String(config.KeyPresets, "", "Path to a custom preset table YAML")
	flags.Int64(config.KeySeed, 0, "RNG seed (0 = random based on time)")
	flags.String(config.KeyLogLevel, "info", "Log level: debug, info, warn, error")
	flags.String(config.KeyLogFile, "~/.flappy/flappy.log", "Log file for terminal play")
	flags.String(config.KeyPlayer, leaderboard.DefaultName, "Name offered on a new high score")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(listCmd)
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newLogger builds the run's logger. Terminal play owns the screen, so its
// log goes to the log file instead of stderr.
func newLogger(s config.Settings, toFile bool) (*log.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closeLog := func() error { return nil }

	if toFile {
		if s.LogFile == "" {
			w = io.Discard
		} else {
			if err := os.MkdirAll(filepath.Dir(s.LogFile), 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
			}
			f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to open log file: %w", err)
			}
			w = f
			closeLog = f.Close
		}
	}

	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, closeLog, nil
}

// openStore opens the configured leaderboard backend.
func openStore(s config.Settings) (leaderboard.Store, error) {
	if s.Backend == config.BackendSQLite {
		db, err := storage.Open(s.Leaderboard)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return leaderboard.NewFileStore(s.Leaderboard), nil
}

// runFrontend builds a session for the front end and runs it until the
// player quits or the process is interrupted. check, when set, can refuse
// the run after the session's playfield is known.
func runFrontend(ctx context.Context, id string, check func(host.View) error) error {
	fe, err := registry.Create(id)
	if err != nil {
		return err
	}

	s, err := config.Current()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(s, fe.Kind() == config.KindGrid)
	if err != nil {
		return err
	}
	defer closeLog()

	table, err := config.LoadTable(s.Presets)
	if err != nil {
		return err
	}

	store, err := openStore(s)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := host.Options{
		Kind:       fe.Kind(),
		Table:      table,
		Difficulty: s.Difficulty,
		Store:      store,
		Logger:     logger,
		PlayerName: s.Player,
	}
	if s.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(s.Seed))
	}

	session, err := host.New(opts)
	if err != nil {
		return err
	}

	if check != nil {
		if err := check(session.View()); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "frontend", id, "difficulty", s.Difficulty, "backend", s.Backend, "seed", s.Seed)
	err = fe.Run(ctx, session, logger)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	if err != nil {
		logger.Error("front end failed", "err", err)
		return err
	}
	logger.Info("bye")
	return nil
}
