package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventRunHalt  EventType = "run_halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RunEvent is emitted when a run starts and when it stops.
type RunEvent struct {
	EventBase
	Input   string  `json:"input"`
	State   string  `json:"state"`
	Steps   int     `json:"steps"`
	Outcome Outcome `json:"outcome,omitempty"`
}

// StepEvent describes one applied transition.
type StepEvent struct {
	EventBase
	Step  int    `json:"step"`
	From  string `json:"from"`
	To    string `json:"to"`
	Read  rune   `json:"read"`
	Write rune   `json:"write"`
	Move  Move   `json:"move"`
	Head  int    `json:"head"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStart func(context.Context, *RunEvent)
	OnStep  func(context.Context, *StepEvent)
	OnHalt  func(context.Context, *RunEvent)
}
