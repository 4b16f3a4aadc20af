package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithMaxSteps sets the step budget. Zero means no limit.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithAllowStay permits the S move during execution.
func WithAllowStay(allow bool) EngineOption {
	return func(e *Engine) {
		e.allowStay = allow
	}
}

// WithImplicitReject controls what an undefined transition means.
// When enabled (the default) the run moves to the rejecting state; otherwise it stops undecided.
func WithImplicitReject(enabled bool) EngineOption {
	return func(e *Engine) {
		e.implicitReject = enabled
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
