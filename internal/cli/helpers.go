package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/rephraser/internal/logging"
	"github.com/aretw0/rephraser/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger on w (stderr in production).
// Info records (completion, interrupt diagnostics) are always shown; debug adds
// per-item traces.
func createLogger(w io.Writer, debug bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(w, level, logging.Format(format))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnItemDone: func(e *domain.ItemEvent) {
			if e.Err != nil {
				return // already logged by the pool
			}
			logger.Debug("Item done", "worker", e.Worker, "depth", e.Depth, "phrases", e.Phrases, "elapsed", e.Elapsed)
		},
		OnWorkerExit: func(e *domain.ItemEvent) {
			logger.Debug("Worker exit", "worker", e.Worker)
		},
	}
}

// IsInterrupted reports whether err comes from a signal or cancellation.
func IsInterrupted(err error) bool {
	return errors.Is(err, domain.ErrInterrupted) || errors.Is(err, context.Canceled)
}
