package host

import "testing"

func TestSignalFor(t *testing.T) {
	tests := []struct {
		phase Phase
		key   Key
		want  Signal
	}{
		{PhaseMenu, KeyFlap, SignalStart},
		{PhaseMenu, KeyConfirm, SignalStart},
		{PhaseMenu, KeyEasy, SignalEasy},
		{PhaseMenu, KeyNormal, SignalNormal},
		{PhaseMenu, KeyHard, SignalHard},
		{PhaseMenu, KeyReset, SignalResetBoard},
		{PhaseMenu, KeyBack, SignalQuit},
		{PhaseMenu, KeyRetry, SignalNone},
		{PhaseMenu, KeyOther, SignalNone},

		{PhasePlaying, KeyFlap, SignalJump},
		{PhasePlaying, KeyPause, SignalPause},
		{PhasePlaying, KeyBack, SignalQuit},
		{PhasePlaying, KeyConfirm, SignalNone},
		{PhasePlaying, KeyEasy, SignalNone},

		{PhasePaused, KeyPause, SignalPause},
		{PhasePaused, KeyFlap, SignalPause},
		{PhasePaused, KeyBack, SignalQuit},
		{PhasePaused, KeyReset, SignalNone},

		{PhaseNameEntry, KeyBack, SignalQuit},
		{PhaseNameEntry, KeyRetry, SignalNone},
		{PhaseNameEntry, KeyConfirm, SignalNone},

		{PhaseGameOver, KeyRetry, SignalRetry},
		{PhaseGameOver, KeyFlap, SignalMenu},
		{PhaseGameOver, KeyOther, SignalMenu},
		{PhaseGameOver, KeyNone, SignalNone},
	}

	for _, tt := range tests {
		if got := SignalFor(tt.phase, tt.key); got != tt.want {
			t.Errorf("SignalFor(%s, %d) = %s, want %s", tt.phase, tt.key, got, tt.want)
		}
	}
}
