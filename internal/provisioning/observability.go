package provisioning

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Observer receives structured provisioning events. Implementations must be
// safe for concurrent use: concurrent steps report from their own
// goroutines.
type Observer interface {
	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Step      string            // Step name (e.g., "bot", "slot/OrderPizza/size")
	Kind      Kind              // Resource kind if applicable
	Resource  string            // Remote resource name/ID if applicable
	Message   string            // Human-readable message
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventRunStarted indicates a provisioning run has started.
	EventRunStarted EventType = "run.started"
	// EventRunCompleted indicates every step completed.
	EventRunCompleted EventType = "run.completed"
	// EventRunFailed indicates the run stopped at a failed step.
	EventRunFailed EventType = "run.failed"

	// EventStepStarted indicates a step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a step failed.
	EventStepFailed EventType = "step.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists and was reused.
	EventResourceExists EventType = "resource.exists"
	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"

	// EventPollWaiting indicates a readiness check is still pending.
	EventPollWaiting EventType = "poll.waiting"
	// EventPollReady indicates a readiness check succeeded.
	EventPollReady EventType = "poll.ready"
)

// SlogObserver implements Observer on top of log/slog.
type SlogObserver struct {
	logger        *slog.Logger
	contextFields map[string]string
}

// NewSlogObserver creates an observer writing to logger, or to
// slog.Default() when logger is nil.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{
		logger:        logger,
		contextFields: make(map[string]string),
	}
}

// Event implements Observer interface.
func (o *SlogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	attrs := []slog.Attr{slog.String("event", string(event.Type))}
	if event.Step != "" {
		attrs = append(attrs, slog.String("step", event.Step))
	}
	if event.Kind != "" {
		attrs = append(attrs, slog.String("kind", string(event.Kind)))
	}
	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}

	// Event fields win over context fields
	fields := maps.Clone(o.contextFields)
	if fields == nil {
		fields = make(map[string]string)
	}
	maps.Copy(fields, event.Fields)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		attrs = append(attrs, slog.String(k, fields[k]))
	}

	record := slog.NewRecord(event.Timestamp, levelFor(event.Type), event.Message, 0)
	record.AddAttrs(attrs...)
	if o.logger.Enabled(context.Background(), record.Level) {
		_ = o.logger.Handler().Handle(context.Background(), record)
	}
}

// WithFields implements Observer interface.
func (o *SlogObserver) WithFields(fields map[string]string) Observer {
	newFields := maps.Clone(o.contextFields)
	if newFields == nil {
		newFields = make(map[string]string)
	}
	maps.Copy(newFields, fields)

	return &SlogObserver{
		logger:        o.logger,
		contextFields: newFields,
	}
}

func levelFor(t EventType) slog.Level {
	switch t {
	case EventRunFailed, EventStepFailed:
		return slog.LevelError
	case EventPollWaiting:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NopObserver discards every event.
type NopObserver struct{}

// Event implements Observer interface.
func (NopObserver) Event(Event) {}

// WithFields implements Observer interface.
func (o NopObserver) WithFields(map[string]string) Observer { return o }

// Helper functions for common events

// LogRunStart logs a run start event.
func LogRunStart(observer Observer, steps int) {
	observer.Event(Event{
		Type:    EventRunStarted,
		Message: fmt.Sprintf("provisioning %d steps", steps),
	})
}

// LogRunComplete logs a run completion event.
func LogRunComplete(observer Observer, duration time.Duration) {
	observer.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("provisioning completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogRunFailed logs a run failure event.
func LogRunFailed(observer Observer, err error) {
	observer.Event(Event{
		Type:    EventRunFailed,
		Message: fmt.Sprintf("provisioning failed: %v", err),
	})
}

// LogStepStart logs a step start event.
func LogStepStart(observer Observer, step string, kind Kind) {
	observer.Event(Event{
		Type:    EventStepStarted,
		Step:    step,
		Kind:    kind,
		Message: "starting",
	})
}

// LogStepComplete logs a step completion event.
func LogStepComplete(observer Observer, step string, kind Kind, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step,
		Kind:    kind,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step failure event.
func LogStepFailed(observer Observer, step string, kind Kind, err error) {
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step,
		Kind:    kind,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, step string, ref ResourceRef) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Step:     step,
		Kind:     ref.Kind,
		Resource: ref.String(),
		Message:  fmt.Sprintf("%s created", ref.Kind),
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, step string, ref ResourceRef) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Step:     step,
		Kind:     ref.Kind,
		Resource: ref.String(),
		Message:  fmt.Sprintf("%s already exists", ref.Kind),
	})
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, kind Kind, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Kind:     kind,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", kind),
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, kind Kind, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Kind:     kind,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", kind),
	})
}

// LogPollWaiting logs a pending readiness check.
func LogPollWaiting(observer Observer, step string, kind Kind, attempt int, status string) {
	if status == "" {
		status = "not found"
	}
	observer.Event(Event{
		Type:    EventPollWaiting,
		Step:    step,
		Kind:    kind,
		Message: "waiting for readiness",
		Fields: map[string]string{
			"attempt": fmt.Sprint(attempt),
			"status":  status,
		},
	})
}

// LogPollReady logs a satisfied readiness check.
func LogPollReady(observer Observer, step string, kind Kind, status string, elapsed time.Duration) {
	observer.Event(Event{
		Type:    EventPollReady,
		Step:    step,
		Kind:    kind,
		Message: fmt.Sprintf("ready after %v", elapsed.Round(time.Millisecond)),
		Fields: map[string]string{
			"status": status,
		},
	})
}
