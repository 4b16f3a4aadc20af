package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"golang.org/x/term"
)

// LogOptions selects where diagnostics go.
type LogOptions struct {
	Debug   bool
	LogFile string
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the Stdout trace).
// With a log file, records are also written there as JSON. The returned func closes the file.
func createLogger(opts LogOptions) (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	if opts.LogFile == "" {
		if opts.Debug {
			return logging.New(level), func() {}, nil
		}
		return logging.NewNop(), func() {}, nil
	}

	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logging.NewWithFile(level, f), func() { f.Close() }, nil
}

// withFlagHint points a stay-move error at the flag that permits it.
func withFlagHint(err error) error {
	if errors.Is(err, compiler.ErrStayNotAllowed) || errors.Is(err, runtime.ErrStayNotAllowed) {
		return fmt.Errorf("%w (use --allow-S)", err)
	}
	return err
}

// isTerminal reports whether w is an interactive terminal. Colors and the banner are reserved for terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outcomeLabel renders the run result as the summary line.
func outcomeLabel(o domain.Outcome) string {
	switch o {
	case domain.OutcomeAccepted:
		return "ACCEPTED ✓"
	case domain.OutcomeRejected:
		return "REJECTED ✗"
	case domain.OutcomeTruncated:
		return "DID NOT HALT (step limit reached) ∞"
	}
	return "UNDECIDED (undefined transition) ?"
}

func styleOutcome(w io.Writer, o domain.Outcome) string {
	label := outcomeLabel(o)
	if !isTerminal(w) {
		return label
	}
	return tui.Outcome(label, o == domain.OutcomeAccepted)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Start", "input", e.Input, "state", e.State)
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.Debug("Run Halt", "state", e.State, "steps", e.Steps, "outcome", e.Outcome)
		},
	}
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
