// Package registry provides a global registry for front-end factories.
// Front ends register themselves in init() functions, allowing the CLI
// to discover and launch them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy/internal/config"
	"github.com/vovakirdan/flappy/internal/host"
)

// Frontend is a toolkit adapter that presents a host.Session to a player.
// Front ends contain no game rules: they map input to host signals and draw
// the session's View.
type Frontend interface {
	// ID returns a unique identifier used on the command line (e.g., "console").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Kind returns the playfield geometry the front end draws in.
	Kind() config.Kind

	// Run presents the session until the player quits or ctx is cancelled.
	Run(ctx context.Context, s *host.Session, logger *log.Logger) error
}

// Info contains metadata about a registered front end.
type Info struct {
	ID    string
	Title string
	Kind  config.Kind
}

// Factory is a function that creates a new instance of a front end.
type Factory func() Frontend

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a front-end factory to the registry.
// Typically called from an adapter's init() function.
// Panics if a front end with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: front end %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	fe := f()
	infos[id] = Info{ID: id, Title: fe.Title(), Kind: fe.Kind()}
}

// List returns information about all registered front ends, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new front end by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown front end %q", id)
	}

	return f(), nil
}

// Exists checks if a front end with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a front end. Used by tests.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(factories, id)
	delete(infos, id)
}
