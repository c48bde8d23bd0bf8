package host

// Key is a toolkit-neutral key press. Front ends translate their own key
// events into Keys and let SignalFor apply the per-phase rules.
type Key int

const (
	KeyNone    Key = iota
	KeyFlap        // space, up
	KeyConfirm     // enter
	KeyRetry       // r
	KeyPause       // p
	KeyEasy        // 1
	KeyNormal      // 2
	KeyHard        // 3
	KeyReset       // d
	KeyBack        // esc
	KeyOther       // anything else
)

// SignalFor maps a key press to the signal it means in phase.
//
// On the start screen flap and confirm both start a round. After a round,
// retry plays again and any other key returns to the start screen.
func SignalFor(phase Phase, k Key) Signal {
	if k == KeyNone {
		return SignalNone
	}

	switch phase {
	case PhaseMenu:
		switch k {
		case KeyFlap, KeyConfirm:
			return SignalStart
		case KeyEasy:
			return SignalEasy
		case KeyNormal:
			return SignalNormal
		case KeyHard:
			return SignalHard
		case KeyReset:
			return SignalResetBoard
		case KeyBack:
			return SignalQuit
		}

	case PhasePlaying:
		switch k {
		case KeyFlap:
			return SignalJump
		case KeyPause:
			return SignalPause
		case KeyBack:
			return SignalQuit
		}

	case PhasePaused:
		switch k {
		case KeyPause, KeyFlap, KeyConfirm:
			return SignalPause
		case KeyBack:
			return SignalQuit
		}

	case PhaseNameEntry:
		if k == KeyBack {
			return SignalQuit
		}

	case PhaseGameOver:
		if k == KeyRetry {
			return SignalRetry
		}
		return SignalMenu
	}

	return SignalNone
}
