package provisioning

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	mu     sync.Mutex
	events []Event
	fields map[string]string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	newObserver := NewMockObserver()
	for k, v := range m.fields {
		newObserver.fields[k] = v
	}
	for k, v := range fields {
		newObserver.fields[k] = v
	}
	return newObserver
}

func (m *MockObserver) types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

func (m *MockObserver) count(t EventType) int {
	n := 0
	for _, et := range m.types() {
		if et == t {
			n++
		}
	}
	return n
}

// fakeClock advances virtual time on Sleep and counts sleeps.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) sleepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sleeps)
}

// conflictErr mimics a resource client's duplicate-name error.
type conflictErr struct{ name string }

func (e *conflictErr) Error() string           { return e.name + " already exists" }
func (e *conflictErr) ConflictingName() string { return e.name }

// codedErr mimics a remote API error carrying a code.
type codedErr struct{ code string }

func (e *codedErr) Error() string     { return "api error " + e.code }
func (e *codedErr) ErrorCode() string { return e.code }

// notFoundErr mimics a resource client's absent-resource error.
type notFoundErr struct{}

func (notFoundErr) Error() string  { return "not found" }
func (notFoundErr) NotFound() bool { return true }

var errBoom = errors.New("boom")

// recorder tracks create calls across goroutines.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// simpleStep returns a step that records its creation and yields a ref
// with ID "<name>-id".
func simpleStep(rec *recorder, name string, kind Kind, deps ...string) StepSpec {
	create := func(_ context.Context, _ Refs) (ResourceRef, error) {
		rec.add(name)
		return ResourceRef{Kind: kind, ID: name + "-id", Name: name}, nil
	}
	return StepSpec{
		Name:      name,
		Kind:      kind,
		DependsOn: deps,
		Create:    create,
		Lookup:    create,
	}
}
