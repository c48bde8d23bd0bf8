package host

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/games/flappy"
	"github.com/vovakirdan/flappy/internal/leaderboard"
)

// ErrNotEnteringName is returned by SubmitName outside the name entry phase.
var ErrNotEnteringName = errors.New("host: no high score awaiting a name")

// Options configures a Session.
type Options struct {
	Kind       config.Kind
	Table      config.Table
	Difficulty config.Difficulty
	Store      leaderboard.Store
	Rand       flappy.Rand // Defaults to a time-seeded source
	Logger     *log.Logger // Defaults to a discarding logger
	PlayerName string      // Name offered first at name entry
}

// View is a snapshot of a session for drawing. It shares nothing mutable
// with the session.
type View struct {
	Phase      Phase
	State      flappy.State
	Config     flappy.Config
	Difficulty config.Difficulty
	Board      []leaderboard.Entry
	LastName   string
	Done       bool
}

// Best returns the top score on the board, or 0 when it is empty.
func (v View) Best() int {
	if len(v.Board) == 0 {
		return 0
	}
	return v.Board[0].Score
}

// Session is one player's run of rounds on one front end. It is safe for
// use from multiple goroutines; every method holds the session lock.
type Session struct {
	mu sync.Mutex

	table      config.Table
	kind       config.Kind
	difficulty config.Difficulty
	cfg        flappy.Config
	rng        flappy.Rand
	store      leaderboard.Store
	logger     *log.Logger

	phase    Phase
	state    flappy.State
	board    []leaderboard.Entry
	lastName string
	done     bool
}

// New creates a session in the menu phase with the board loaded.
func New(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, errors.New("host: a leaderboard store is required")
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		table:    opts.Table,
		kind:     opts.Kind,
		rng:      opts.Rand,
		store:    opts.Store,
		logger:   opts.Logger,
		phase:    PhaseMenu,
		lastName: leaderboard.NormalizeName(opts.PlayerName, leaderboard.DefaultName),
	}
	if err := s.setDifficulty(opts.Difficulty); err != nil {
		return nil, err
	}
	s.state = flappy.NewState(s.cfg)

	if err := s.loadBoard(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handle processes one host tick's signal. While playing it advances the
// simulation exactly once. Errors come from the leaderboard store.
func (s *Session) Handle(sig Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}

	switch s.phase {
	case PhaseMenu:
		return s.handleMenu(sig)
	case PhasePlaying:
		return s.handlePlaying(sig)
	case PhasePaused:
		s.handlePaused(sig)
	case PhaseNameEntry:
		// Only a cancel leaves name entry; the name itself arrives via SubmitName
		if sig == SignalQuit || sig == SignalMenu {
			s.logger.Debug("name entry skipped", "score", s.state.Score)
			s.phase = PhaseGameOver
		}
	case PhaseGameOver:
		return s.handleGameOver(sig)
	}
	return nil
}

func (s *Session) handleMenu(sig Signal) error {
	switch sig {
	case SignalStart, SignalJump:
		return s.startRound()
	case SignalEasy:
		return s.setDifficulty(config.DifficultyEasy)
	case SignalNormal:
		return s.setDifficulty(config.DifficultyNormal)
	case SignalHard:
		return s.setDifficulty(config.DifficultyHard)
	case SignalResetBoard:
		if err := s.store.Reset(); err != nil {
			return err
		}
		s.board = nil
		s.logger.Info("leaderboard reset")
	case SignalQuit:
		s.done = true
	}
	return nil
}

func (s *Session) handlePlaying(sig Signal) error {
	switch sig {
	case SignalPause:
		s.phase = PhasePaused
		return nil
	case SignalQuit, SignalMenu:
		s.logger.Debug("round abandoned", "score", s.state.Score)
		s.phase = PhaseMenu
		return nil
	}

	s.state = flappy.Tick(s.state, sig == SignalJump, s.rng, s.cfg)
	if s.state.Alive {
		return nil
	}
	return s.endRound()
}

func (s *Session) handlePaused(sig Signal) {
	switch sig {
	case SignalPause, SignalStart, SignalJump:
		s.phase = PhasePlaying
	case SignalQuit, SignalMenu:
		s.phase = PhaseMenu
	}
}

func (s *Session) handleGameOver(sig Signal) error {
	switch sig {
	case SignalNone:
	case SignalRetry:
		return s.startRound()
	default:
		s.phase = PhaseMenu
	}
	return nil
}

func (s *Session) startRound() error {
	if err := s.loadBoard(); err != nil {
		return err
	}
	s.state = flappy.NewState(s.cfg)
	s.phase = PhasePlaying
	s.logger.Debug("round started", "difficulty", s.difficulty)
	return nil
}

func (s *Session) endRound() error {
	if err := s.loadBoard(); err != nil {
		return err
	}
	score := s.state.Score
	s.logger.Info("round over", "score", score, "ticks", s.state.Ticks, "difficulty", s.difficulty)

	if leaderboard.IsHighScore(score, s.board) {
		s.phase = PhaseNameEntry
		return nil
	}
	s.phase = PhaseGameOver
	return nil
}

// SubmitName records the finished round's score under name. Blank input
// reuses the last name entered. Save failures are returned unchanged from
// the store and leave the session in name entry.
func (s *Session) SubmitName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNameEntry {
		return ErrNotEnteringName
	}

	name = leaderboard.NormalizeName(name, s.lastName)
	board := leaderboard.Upsert(name, s.state.Score, s.board)
	if err := s.store.Save(board); err != nil {
		return err
	}

	s.board = board
	s.lastName = name
	s.phase = PhaseGameOver
	s.logger.Info("high score saved", "name", name, "score", s.state.Score)
	return nil
}

// SetDifficulty switches preset. It only takes effect outside a round.
func (s *Session) SetDifficulty(d config.Difficulty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseMenu && s.phase != PhaseGameOver {
		return fmt.Errorf("host: cannot change difficulty while %s", s.phase)
	}
	return s.setDifficulty(d)
}

func (s *Session) setDifficulty(d config.Difficulty) error {
	g, p, err := s.table.Resolve(s.kind, d)
	if err != nil {
		return err
	}
	cfg := flappy.NewConfig(g, p)
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.difficulty = d
	s.state = flappy.NewState(cfg)
	return nil
}

func (s *Session) loadBoard() error {
	board, err := s.store.Load()
	if err != nil {
		return err
	}
	s.board = board
	return nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Done reports whether the player has quit.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Config returns the active simulation parameters.
func (s *Session) Config() flappy.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// View returns a snapshot for drawing.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.Pipes = slices.Clone(s.state.Pipes)
	return View{
		Phase:      s.phase,
		State:      state,
		Config:     s.cfg,
		Difficulty: s.difficulty,
		Board:      slices.Clone(s.board),
		LastName:   s.lastName,
		Done:       s.done,
	}
}
