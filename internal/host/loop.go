package host

import (
	"context"
	"time"
)

// Poller returns the input gathered since the previous poll. It must not block.
type Poller interface {
	Poll() Signal
}

// Renderer draws a session snapshot.
type Renderer interface {
	Render(View) error
}

// PollerFunc adapts a function to Poller.
type PollerFunc func() Signal

// Poll calls f.
func (f PollerFunc) Poll() Signal { return f() }

// Loop drives a session from a ticker: each tick polls one signal, hands it to
// the session and renders the result. It returns nil once the player quits,
// ctx.Err() on cancellation and the first session or renderer error otherwise.
func Loop(ctx context.Context, s *Session, p Poller, r Renderer, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := r.Render(s.View()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := s.Handle(p.Poll()); err != nil {
			return err
		}

		view := s.View()
		if err := r.Render(view); err != nil {
			return err
		}
		if view.Done {
			return nil
		}
	}
}
