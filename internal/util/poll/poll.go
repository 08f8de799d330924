// Package poll provides a generic wait-until-condition primitive for
// remote resources that become usable some time after they are created.
//
// Unlike the exponential backoff used for transient failures, polling uses a
// fixed interval per call site.
package poll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// State is the terminal state of a polling loop.
type State int

const (
	// Ready means the predicate was satisfied.
	Ready State = iota
	// Failed means the resource reported a terminal failure, or the status
	// could not be fetched.
	Failed
	// TimedOut means the timeout or the caller's deadline elapsed first.
	TimedOut
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed-out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is one observation of a remote resource's status.
type Snapshot struct {
	// Status is the raw status value reported by the remote API.
	Status string
	// Terminal is set when Status belongs to the resource kind's explicit
	// failure enumeration. "Not ready yet" is never terminal.
	Terminal bool
	// Reasons carries remote failure details verbatim.
	Reasons []string
}

// FetchFunc retrieves the current status of a resource.
type FetchFunc func(ctx context.Context) (Snapshot, error)

// Predicate reports whether a snapshot is the target state.
type Predicate func(Snapshot) bool

// StatusIn returns a predicate matching any of the given statuses.
func StatusIn(statuses ...string) Predicate {
	return func(s Snapshot) bool {
		for _, status := range statuses {
			if s.Status == status {
				return true
			}
		}
		return false
	}
}

// Condition describes a single wait.
type Condition struct {
	Fetch    FetchFunc
	Until    Predicate
	Interval time.Duration
	Timeout  time.Duration

	// NotFoundPending treats a not-found error from Fetch as "not yet ready".
	// Set it only for kinds that materialize asynchronously after create
	// returns; for everything else a missing resource is a failure.
	NotFoundPending bool

	// OnAttempt, if set, is called after every fetch that did not settle the
	// wait.
	OnAttempt func(attempt int, snapshot Snapshot, err error)
}

// Outcome is the tagged result of Await.
type Outcome struct {
	State    State
	Snapshot Snapshot
	Reason   string
	Attempts int
	Elapsed  time.Duration
}

// Option configures a Poller.
type Option func(*Poller)

// WithClock replaces the wall clock (used by tests).
func WithClock(c Clock) Option {
	return func(p *Poller) {
		p.clock = c
	}
}

// Poller runs polling loops against a clock.
type Poller struct {
	clock Clock
}

// New creates a Poller backed by the wall clock unless overridden.
func New(opts ...Option) *Poller {
	p := &Poller{clock: realClock{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Await polls c.Fetch until c.Until holds, the resource reports a terminal
// failure, or c.Timeout elapses. Elapsed time is checked before every fetch,
// so no call is made once the timeout has passed. Cancellation of ctx is
// reported as TimedOut.
func (p *Poller) Await(ctx context.Context, c Condition) Outcome {
	start := p.clock.Now()
	var last Snapshot

	for attempt := 1; ; attempt++ {
		elapsed := p.clock.Now().Sub(start)
		if err := ctx.Err(); err != nil {
			return Outcome{State: TimedOut, Snapshot: last, Reason: err.Error(), Attempts: attempt - 1, Elapsed: elapsed}
		}
		if elapsed > c.Timeout {
			return Outcome{
				State:    TimedOut,
				Snapshot: last,
				Reason:   fmt.Sprintf("not ready after %v", c.Timeout),
				Attempts: attempt - 1,
				Elapsed:  elapsed,
			}
		}

		snapshot, err := c.Fetch(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return Outcome{State: TimedOut, Snapshot: last, Reason: ctx.Err().Error(), Attempts: attempt, Elapsed: p.clock.Now().Sub(start)}
		case err != nil && c.NotFoundPending && IsNotFound(err):
			// not materialized yet
		case err != nil:
			return Outcome{State: Failed, Snapshot: last, Reason: err.Error(), Attempts: attempt, Elapsed: p.clock.Now().Sub(start)}
		case c.Until(snapshot):
			return Outcome{State: Ready, Snapshot: snapshot, Attempts: attempt, Elapsed: p.clock.Now().Sub(start)}
		case snapshot.Terminal:
			return Outcome{State: Failed, Snapshot: snapshot, Reason: failureReason(snapshot), Attempts: attempt, Elapsed: p.clock.Now().Sub(start)}
		default:
			last = snapshot
		}

		if c.OnAttempt != nil {
			c.OnAttempt(attempt, snapshot, err)
		}

		if err := p.clock.Sleep(ctx, c.Interval); err != nil {
			return Outcome{State: TimedOut, Snapshot: last, Reason: err.Error(), Attempts: attempt, Elapsed: p.clock.Now().Sub(start)}
		}
	}
}

// Await runs c on a wall-clock Poller.
func Await(ctx context.Context, c Condition) Outcome {
	return New().Await(ctx, c)
}

// IsNotFound reports whether err signals a missing remote resource. Errors
// opt in by implementing NotFound() bool.
func IsNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}

func failureReason(s Snapshot) string {
	if len(s.Reasons) == 0 {
		return fmt.Sprintf("status %s", s.Status)
	}
	return fmt.Sprintf("status %s: %s", s.Status, strings.Join(s.Reasons, "; "))
}
