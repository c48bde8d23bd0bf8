package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/leaderboard"
)

type fixedRand int

func (r fixedRand) Intn(n int) int { return int(r) % n }

// memStore is an in-memory leaderboard.Store with injectable save failures.
type memStore struct {
	entries []leaderboard.Entry
	saveErr error
	resets  int
}

func (m *memStore) Load() ([]leaderboard.Entry, error) { return leaderboard.Rank(m.entries), nil }
func (m *memStore) Save(e []leaderboard.Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = e
	return nil
}
func (m *memStore) Reset() error { m.entries = nil; m.resets++; return nil }
func (m *memStore) Close() error { return nil }

// hoverTable keeps the bird level until it jumps; a jump carries it to the
// ceiling where the top pipe half row kills it.
func hoverTable() config.Table {
	layout := config.Layout{
		Geometry: config.Geometry{
			Width: 20, Height: 20,
			BirdX: 2, BirdWidth: 1, BirdHeight: 1,
			PipeWidth: 1, SpawnX: 19, GapMargin: 0,
			StartVelocity: 0, TickMillis: 50,
		},
		Presets: map[config.Difficulty]config.Preset{
			config.DifficultyNormal: {GapSize: 18, SpawnInterval: 5, Gravity: 0, JumpVelocity: -1, ScrollSpeed: 1},
		},
	}
	return config.Table{Grid: layout, Pixel: layout}
}

func newTestSession(t *testing.T, table config.Table, store leaderboard.Store) *Session {
	t.Helper()
	s, err := New(Options{
		Kind:       config.KindGrid,
		Table:      table,
		Difficulty: config.DifficultyNormal,
		Store:      store,
		Rand:       fixedRand(1),
		PlayerName: "Ace",
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func handle(t *testing.T, s *Session, sig Signal) {
	t.Helper()
	if err := s.Handle(sig); err != nil {
		t.Fatalf("Handle(%s) failed: %v", sig, err)
	}
}

// playOut sends first and then no input until the round ends.
func playOut(t *testing.T, s *Session, first Signal) {
	t.Helper()
	sig := first
	for i := 0; i < 500; i++ {
		handle(t, s, sig)
		if s.Phase() != PhasePlaying {
			return
		}
		sig = SignalNone
	}
	t.Fatal("round did not end")
}

// scoreOne hovers until the first pipe has been passed.
func scoreOne(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 100; i++ {
		handle(t, s, SignalNone)
		if s.View().State.Score > 0 {
			return
		}
	}
	t.Fatal("no pipe was passed")
}

func TestNewSessionStartsInMenu(t *testing.T) {
	store := &memStore{entries: []leaderboard.Entry{{Name: "Bob", Score: 3}, {Name: "Alice", Score: 9}}}
	s := newTestSession(t, config.DefaultTable(), store)

	v := s.View()
	if v.Phase != PhaseMenu {
		t.Errorf("Expected menu phase, got %s", v.Phase)
	}
	if v.Difficulty != config.DifficultyNormal {
		t.Errorf("Expected normal difficulty, got %s", v.Difficulty)
	}
	if v.Best() != 9 || v.Board[0].Name != "Alice" {
		t.Errorf("Expected loaded and ranked board, got %v", v.Board)
	}
	if v.LastName != "Ace" {
		t.Errorf("Expected last name Ace, got %q", v.LastName)
	}
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Options{Kind: config.KindGrid, Table: config.DefaultTable()}); err == nil {
		t.Error("Expected New() without a store to fail")
	}
}

func TestMenuDifficultySignals(t *testing.T) {
	table := config.DefaultTable()
	s := newTestSession(t, table, &memStore{})

	tests := []struct {
		sig  Signal
		want config.Difficulty
	}{
		{SignalEasy, config.DifficultyEasy},
		{SignalHard, config.DifficultyHard},
		{SignalNormal, config.DifficultyNormal},
	}

	for _, tt := range tests {
		handle(t, s, tt.sig)
		v := s.View()
		if v.Difficulty != tt.want {
			t.Errorf("after %s: difficulty = %s, want %s", tt.sig, v.Difficulty, tt.want)
		}
		if want := table.Grid.Presets[tt.want].GapSize; v.Config.GapSize != want {
			t.Errorf("after %s: gap size = %d, want %d", tt.sig, v.Config.GapSize, want)
		}
		if v.Phase != PhaseMenu {
			t.Errorf("after %s: phase = %s, want menu", tt.sig, v.Phase)
		}
	}
}

func TestRoundWithoutHighScore(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})

	handle(t, s, SignalStart)
	if s.Phase() != PhasePlaying {
		t.Fatalf("Expected playing phase, got %s", s.Phase())
	}

	// The bird falls out of the field before any pipe arrives
	playOut(t, s, SignalNone)
	v := s.View()
	if v.Phase != PhaseGameOver {
		t.Fatalf("Expected game over, got %s", v.Phase)
	}
	if v.State.Alive || v.State.Score != 0 {
		t.Errorf("Expected dead bird with no score, got %+v", v.State)
	}

	handle(t, s, SignalRetry)
	v = s.View()
	if v.Phase != PhasePlaying || !v.State.Alive || v.State.Ticks != 0 {
		t.Errorf("Expected a fresh round after retry, got %s %+v", v.Phase, v.State)
	}

	playOut(t, s, SignalNone)
	handle(t, s, SignalJump)
	if s.Phase() != PhaseMenu {
		t.Errorf("Expected any other key to return to the menu, got %s", s.Phase())
	}
}

func TestMenuSpaceStartsRound(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})

	handle(t, s, SignalJump)
	if s.Phase() != PhasePlaying {
		t.Errorf("Expected playing phase, got %s", s.Phase())
	}
}

func TestGameOverIgnoresNoInput(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})
	handle(t, s, SignalStart)
	playOut(t, s, SignalNone)

	handle(t, s, SignalNone)
	if s.Phase() != PhaseGameOver {
		t.Errorf("Expected game over to wait for input, got %s", s.Phase())
	}
}

func TestHighScoreNameEntry(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, hoverTable(), store)

	handle(t, s, SignalStart)
	scoreOne(t, s)
	playOut(t, s, SignalJump)

	v := s.View()
	if v.Phase != PhaseNameEntry {
		t.Fatalf("Expected name entry, got %s (score %d)", v.Phase, v.State.Score)
	}
	score := v.State.Score

	// Blank input falls back to the last name
	if err := s.SubmitName("   "); err != nil {
		t.Fatalf("SubmitName() failed: %v", err)
	}

	v = s.View()
	if v.Phase != PhaseGameOver {
		t.Errorf("Expected game over after name entry, got %s", v.Phase)
	}
	want := []leaderboard.Entry{{Name: "Ace", Score: score}}
	if !reflect.DeepEqual(store.entries, want) {
		t.Errorf("stored board = %v, want %v", store.entries, want)
	}
	if !reflect.DeepEqual(v.Board, want) {
		t.Errorf("view board = %v, want %v", v.Board, want)
	}
}

func TestSubmitNameRemembersName(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, hoverTable(), store)

	handle(t, s, SignalStart)
	scoreOne(t, s)
	playOut(t, s, SignalJump)
	if err := s.SubmitName("Zoe"); err != nil {
		t.Fatalf("SubmitName() failed: %v", err)
	}
	if got := s.View().LastName; got != "Zoe" {
		t.Errorf("LastName = %q, want Zoe", got)
	}
}

func TestNameEntryCanBeSkipped(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, hoverTable(), store)

	handle(t, s, SignalStart)
	scoreOne(t, s)
	playOut(t, s, SignalJump)
	handle(t, s, SignalQuit)

	if s.Phase() != PhaseGameOver {
		t.Errorf("Expected game over, got %s", s.Phase())
	}
	if len(store.entries) != 0 {
		t.Errorf("Expected nothing saved, got %v", store.entries)
	}
	if s.Done() {
		t.Error("Skipping name entry must not end the session")
	}
}

func TestSubmitNameOutsideNameEntry(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})

	if err := s.SubmitName("Bob"); !errors.Is(err, ErrNotEnteringName) {
		t.Errorf("Expected ErrNotEnteringName, got %v", err)
	}
}

func TestSaveFailureSurfaces(t *testing.T) {
	saveErr := errors.New("disk full")
	store := &memStore{saveErr: saveErr}
	s := newTestSession(t, hoverTable(), store)

	handle(t, s, SignalStart)
	scoreOne(t, s)
	playOut(t, s, SignalJump)

	if err := s.SubmitName("Bob"); !errors.Is(err, saveErr) {
		t.Errorf("Expected save error, got %v", err)
	}
	if s.Phase() != PhaseNameEntry {
		t.Errorf("Expected to stay in name entry, got %s", s.Phase())
	}
}

func TestPauseStopsTicks(t *testing.T) {
	s := newTestSession(t, hoverTable(), &memStore{})

	handle(t, s, SignalStart)
	handle(t, s, SignalNone)
	ticks := s.View().State.Ticks

	handle(t, s, SignalPause)
	handle(t, s, SignalNone)
	handle(t, s, SignalNone)
	v := s.View()
	if v.Phase != PhasePaused {
		t.Fatalf("Expected paused, got %s", v.Phase)
	}
	if v.State.Ticks != ticks {
		t.Errorf("Ticks advanced while paused: %d -> %d", ticks, v.State.Ticks)
	}

	handle(t, s, SignalPause)
	handle(t, s, SignalNone)
	if got := s.View().State.Ticks; got != ticks+1 {
		t.Errorf("Ticks after resume = %d, want %d", got, ticks+1)
	}
}

func TestQuitDuringRoundReturnsToMenu(t *testing.T) {
	s := newTestSession(t, hoverTable(), &memStore{})

	handle(t, s, SignalStart)
	handle(t, s, SignalQuit)
	if s.Phase() != PhaseMenu || s.Done() {
		t.Errorf("Expected menu without quitting, got %s done=%v", s.Phase(), s.Done())
	}
}

func TestResetBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.txt")
	if err := leaderboard.Save(path, []leaderboard.Entry{{Name: "Alice", Score: 50}}); err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, config.DefaultTable(), leaderboard.NewFileStore(path))

	if len(s.View().Board) != 1 {
		t.Fatalf("Expected board loaded from file")
	}
	handle(t, s, SignalResetBoard)

	if len(s.View().Board) != 0 {
		t.Errorf("Expected empty board, got %v", s.View().Board)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected board file to be deleted")
	}
}

func TestQuitFromMenu(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})

	handle(t, s, SignalQuit)
	if !s.Done() || !s.View().Done {
		t.Fatal("Expected session to be done")
	}

	// Nothing happens after quitting
	handle(t, s, SignalStart)
	if s.Phase() != PhaseMenu {
		t.Errorf("Expected phase to stay menu, got %s", s.Phase())
	}
}

func TestSetDifficulty(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})

	if err := s.SetDifficulty(config.DifficultyHard); err != nil {
		t.Fatalf("SetDifficulty() in menu failed: %v", err)
	}
	if s.View().Difficulty != config.DifficultyHard {
		t.Error("Expected hard difficulty")
	}

	handle(t, s, SignalStart)
	if err := s.SetDifficulty(config.DifficultyEasy); err == nil {
		t.Error("Expected SetDifficulty() during a round to fail")
	}
	if err := s.SetDifficulty("extreme"); err == nil {
		t.Error("Expected unknown difficulty to fail")
	}
}

func TestViewIsASnapshot(t *testing.T) {
	s := newTestSession(t, hoverTable(), &memStore{entries: []leaderboard.Entry{{Name: "a", Score: 1}}})
	handle(t, s, SignalStart)
	for i := 0; i < 6; i++ {
		handle(t, s, SignalNone)
	}

	v := s.View()
	if len(v.State.Pipes) == 0 {
		t.Fatal("Expected a pipe on the field")
	}
	v.State.Pipes[0].X = -100
	v.Board[0].Score = 99

	again := s.View()
	if again.State.Pipes[0].X == -100 || again.Board[0].Score == 99 {
		t.Error("View shares memory with the session")
	}
}

func TestSignalAndPhaseNames(t *testing.T) {
	if SignalResetBoard.String() != "reset-board" || Signal(99).String() != "unknown" {
		t.Error("unexpected signal names")
	}
	if PhaseNameEntry.String() != "name-entry" || Phase(-1).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}

type scriptPoller struct {
	signals []Signal
}

func (p *scriptPoller) Poll() Signal {
	if len(p.signals) == 0 {
		return SignalNone
	}
	sig := p.signals[0]
	p.signals = p.signals[1:]
	return sig
}

type countingRenderer struct {
	views []View
	err   error
}

func (r *countingRenderer) Render(v View) error {
	r.views = append(r.views, v)
	return r.err
}

func TestLoopRunsUntilQuit(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})
	poller := &scriptPoller{signals: []Signal{SignalEasy, SignalQuit}}
	renderer := &countingRenderer{}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Loop(ctx, s, poller, renderer, time.Millisecond); err != nil {
		t.Fatalf("Loop() failed: %v", err)
	}
	if len(renderer.views) != 3 {
		t.Errorf("Expected 3 renders, got %d", len(renderer.views))
	}
	if last := renderer.views[len(renderer.views)-1]; !last.Done || last.Difficulty != config.DifficultyEasy {
		t.Errorf("unexpected final view: done=%v difficulty=%s", last.Done, last.Difficulty)
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Loop(ctx, s, PollerFunc(func() Signal { return SignalNone }), &countingRenderer{}, time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestLoopReturnsRenderError(t *testing.T) {
	s := newTestSession(t, config.DefaultTable(), &memStore{})
	renderErr := errors.New("window closed")

	err := Loop(context.Background(), s, &scriptPoller{}, &countingRenderer{err: renderErr}, time.Millisecond)
	if !errors.Is(err, renderErr) {
		t.Errorf("Expected render error, got %v", err)
	}
}
