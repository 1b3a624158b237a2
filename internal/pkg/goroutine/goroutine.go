// Package goroutine runs background work with a bounded concurrency limit.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/authenticator/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used per CPU when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

var (
	// ErrLimitReached is returned by Go when every slot is taken.
	ErrLimitReached = errors.New("goroutine: maximum concurrency reached")
	// ErrClosed is returned by Go after Wait has been called.
	ErrClosed = errors.New("goroutine: manager is closed")
)

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// It collects errors returned by tasks and can be waited on using Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      sync.WaitGroup
	sema    chan struct{}
	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f in a new goroutine if a slot is available.
//
// It never blocks: when the manager is full it returns ErrLimitReached, and
// after Wait it returns ErrClosed. A panic inside f is recovered and logged.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) error {
	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return ErrClosed
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached", "limit", cap(g.sema))
		return ErrLimitReached
	}

	g.wg.Go(func() {
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", string(stack))
				}
			}
		}()

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "goroutine canceled before start", "because", err)
			return
		}

		if err := f(ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	})

	return nil
}

// Running reports how many goroutines currently hold a slot.
func (g *Manager) Running() int {
	return len(g.sema)
}

// Wait stops accepting new work, blocks until all scheduled goroutines finish
// and returns any collected errors.
func (g *Manager) Wait() error {
	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
