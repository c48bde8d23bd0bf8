// Package host runs Flappy Bird rounds independently of any toolkit.
//
// A Session owns the round lifecycle: it advances the simulation once per
// host tick, consults the leaderboard at round boundaries and tracks the
// selected difficulty. Front ends translate their input into Signals, feed
// them to Handle and draw the View they get back.
package host

// Signal is one abstract input per host tick.
type Signal int

const (
	SignalNone Signal = iota
	SignalJump
	SignalStart
	SignalRetry
	SignalMenu
	SignalPause
	SignalEasy
	SignalNormal
	SignalHard
	SignalResetBoard
	SignalQuit
)

var signalNames = [...]string{
	SignalNone:       "none",
	SignalJump:       "jump",
	SignalStart:      "start",
	SignalRetry:      "retry",
	SignalMenu:       "menu",
	SignalPause:      "pause",
	SignalEasy:       "easy",
	SignalNormal:     "normal",
	SignalHard:       "hard",
	SignalResetBoard: "reset-board",
	SignalQuit:       "quit",
}

// String returns the signal's name.
func (s Signal) String() string {
	if s < 0 || int(s) >= len(signalNames) {
		return "unknown"
	}
	return signalNames[s]
}

// Phase is where a session is in the round lifecycle.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseNameEntry
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseMenu:      "menu",
	PhasePlaying:   "playing",
	PhasePaused:    "paused",
	PhaseNameEntry: "name-entry",
	PhaseGameOver:  "game-over",
}

// String returns the phase's name.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}
