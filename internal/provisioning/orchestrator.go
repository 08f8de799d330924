package provisioning

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/imamik/lexdeploy/internal/util/async"
	"github.com/imamik/lexdeploy/internal/util/poll"
)

// StepState is the lifecycle state of a step within a run.
type StepState string

const (
	StepPending       StepState = "pending"
	StepCreating      StepState = "creating"
	StepAwaitingReady StepState = "awaiting-ready"
	StepDone          StepState = "done"
	StepFailed        StepState = "failed"
)

// RunState is the final state of a run.
type RunState string

const (
	RunDone   RunState = "done"
	RunFailed RunState = "failed"
)

// StepResult records what happened to one step.
type StepResult struct {
	Name       string
	Kind       Kind
	State      StepState
	Resolution Resolution
	Ref        ResourceRef
	Duration   time.Duration
	Err        error
}

// Run is the outcome of Orchestrator.Run. Steps lists executed steps in
// declaration order followed by the ones never started.
type Run struct {
	State    RunState
	Refs     Refs
	Steps    []StepResult
	Duration time.Duration
}

// Step returns the result of the named step.
func (r *Run) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Orchestrator executes a declared step chain: each step is ensured, then
// awaited, and its ref is handed to later steps that depend on it. The
// first failure stops the run; nothing is rolled back.
type Orchestrator struct {
	poller     *poll.Poller
	observer   Observer
	metrics    *Metrics
	runTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPoller replaces the wall-clock poller.
func WithPoller(p *poll.Poller) Option {
	return func(o *Orchestrator) {
		o.poller = p
	}
}

// WithObserver sets the event sink.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) {
		o.observer = obs
	}
}

// WithMetrics records step, ensure and poll metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithRunTimeout bounds the whole run. Zero means no deadline beyond the
// caller's context.
func WithRunTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.runTimeout = d
	}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		poller:   poll.New(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Plan validates steps and returns them grouped into execution batches.
func (o *Orchestrator) Plan(steps []StepSpec) ([][]string, error) {
	if err := validatePlan(steps); err != nil {
		return nil, err
	}
	var out [][]string
	for _, batch := range batches(steps) {
		names := make([]string, 0, len(batch))
		for _, s := range batch {
			names = append(names, s.Name)
		}
		out = append(out, names)
	}
	return out, nil
}

// Run executes steps in declaration order and stops at the first failure,
// returning the partial Run and a *StepError. A malformed declaration is
// rejected before any remote call with a nil Run and an error wrapping
// ErrInvalidPlan.
func (o *Orchestrator) Run(ctx context.Context, steps []StepSpec) (*Run, error) {
	if err := validatePlan(steps); err != nil {
		return nil, err
	}

	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	start := time.Now()
	run := &Run{Refs: NewRefs()}
	states := make(map[string]StepState, len(steps))
	for _, s := range steps {
		states[s.Name] = StepPending
	}

	LogRunStart(o.observer, len(steps))

	var runErr error
	for _, batch := range batches(steps) {
		if runErr = o.runBatch(ctx, batch, run, states); runErr != nil {
			break
		}
	}

	for _, s := range steps {
		if states[s.Name] == StepPending {
			run.Steps = append(run.Steps, StepResult{Name: s.Name, Kind: s.Kind, State: StepPending})
		}
	}

	run.Duration = time.Since(start)
	if runErr != nil {
		run.State = RunFailed
		LogRunFailed(o.observer, runErr)
		return run, runErr
	}
	run.State = RunDone
	LogRunComplete(o.observer, run.Duration)
	return run, nil
}

func (o *Orchestrator) runBatch(ctx context.Context, batch []StepSpec, run *Run, states map[string]StepState) error {
	// Dependencies are done here: validatePlan only admits backward
	// dependencies and Run stops at the first failed batch.
	var results []StepResult
	if len(batch) == 1 {
		results = []StepResult{o.execute(ctx, batch[0], run.Refs.view(batch[0].DependsOn))}
	} else {
		tasks := make([]async.Task[StepResult], 0, len(batch))
		for _, s := range batch {
			deps := run.Refs.view(s.DependsOn)
			tasks = append(tasks, async.Task[StepResult]{
				Name: s.Name,
				Func: func(ctx context.Context) (StepResult, error) {
					res := o.execute(ctx, s, deps)
					return res, res.Err
				},
			})
		}
		// Every result carries its step's error; the loop below picks the first.
		collected, _ := async.Collect(ctx, tasks)
		for _, c := range collected {
			results = append(results, c.Value)
		}
	}

	// Refs and states are only written here, on the calling goroutine.
	var firstErr error
	for _, res := range results {
		states[res.Name] = res.State
		run.Steps = append(run.Steps, res)
		if res.State == StepDone {
			run.Refs.set(res.Name, res.Ref)
		}
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}
	return firstErr
}

// execute runs one step to completion. It must not touch shared state.
func (o *Orchestrator) execute(ctx context.Context, s StepSpec, deps Refs) StepResult {
	start := time.Now()
	res := StepResult{Name: s.Name, Kind: s.Kind, State: StepCreating}

	fail := func(err error) StepResult {
		res.State = StepFailed
		res.Duration = time.Since(start)
		res.Err = &StepError{Step: s.Name, Kind: s.Kind, Err: err}
		LogStepFailed(o.observer, s.Name, s.Kind, err)
		o.metrics.observeStep(s.Kind, StepFailed, res.Duration)
		return res
	}

	LogStepStart(o.observer, s.Name, s.Kind)

	op := EnsureOp{
		Kind:   s.Kind,
		Name:   s.Name,
		Policy: s.Policy,
		Create: func(ctx context.Context) (ResourceRef, error) { return s.Create(ctx, deps) },
	}
	if s.Lookup != nil {
		op.Lookup = func(ctx context.Context) (ResourceRef, error) { return s.Lookup(ctx, deps) }
	}

	ref, resolution, err := Ensure(ctx, op)
	if err != nil {
		return fail(err)
	}
	res.Ref = ref
	res.Resolution = resolution
	o.metrics.observeEnsure(s.Kind, resolution)
	if resolution == ResolutionReused {
		LogResourceExists(o.observer, s.Name, ref)
	} else {
		LogResourceCreated(o.observer, s.Name, ref)
	}

	if r := s.Readiness; r != nil {
		res.State = StepAwaitingReady
		outcome := o.poller.Await(ctx, poll.Condition{
			Fetch:           func(ctx context.Context) (poll.Snapshot, error) { return r.Fetch(ctx, ref, deps) },
			Until:           r.Until,
			Interval:        r.Interval,
			Timeout:         r.Timeout,
			NotFoundPending: r.NotFoundPending,
			OnAttempt: func(attempt int, snap poll.Snapshot, _ error) {
				LogPollWaiting(o.observer, s.Name, s.Kind, attempt, snap.Status)
			},
		})
		o.metrics.observePoll(s.Kind, outcome.State.String(), outcome.Attempts)

		switch outcome.State {
		case poll.Ready:
			LogPollReady(o.observer, s.Name, s.Kind, outcome.Snapshot.Status, outcome.Elapsed)
		case poll.Failed:
			return fail(&ReadinessFailedError{
				Kind:   s.Kind,
				Name:   ref.String(),
				Status: outcome.Snapshot.Status,
				Reason: outcome.Reason,
			})
		default:
			return fail(&ReadinessTimeoutError{
				Kind:       s.Kind,
				Name:       ref.String(),
				Timeout:    r.Timeout,
				Elapsed:    outcome.Elapsed,
				LastStatus: outcome.Snapshot.Status,
			})
		}
	}

	res.State = StepDone
	res.Duration = time.Since(start)
	LogStepComplete(o.observer, s.Name, s.Kind, res.Duration)
	o.metrics.observeStep(s.Kind, StepDone, res.Duration)
	return res
}

// validatePlan rejects duplicate names, unknown or forward dependencies and
// steps that cannot resolve a conflict.
func validatePlan(steps []StepSpec) error {
	var errs []error
	seen := make(map[string]bool, len(steps))
	declared := make(map[string]bool, len(steps))
	for _, s := range steps {
		declared[s.Name] = true
	}

	for i, s := range steps {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("step %d has no name", i))
			continue
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("duplicate step %s", s.Name))
		}
		if s.Create == nil {
			errs = append(errs, fmt.Errorf("step %s has no create function", s.Name))
		}
		if s.Policy == ReuseExisting && s.Lookup == nil {
			errs = append(errs, fmt.Errorf("step %s reuses existing resources but has no lookup", s.Name))
		}
		if r := s.Readiness; r != nil && (r.Fetch == nil || r.Until == nil) {
			errs = append(errs, fmt.Errorf("step %s has an incomplete readiness check", s.Name))
		}
		for _, dep := range s.DependsOn {
			switch {
			case !declared[dep]:
				errs = append(errs, fmt.Errorf("step %s depends on unknown step %s", s.Name, dep))
			case !seen[dep]:
				errs = append(errs, fmt.Errorf("step %s depends on later step %s", s.Name, dep))
			}
		}
		seen[s.Name] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPlan, errors.Join(errs...))
	}
	return nil
}

// batches groups consecutive Concurrent steps sharing a dependency set.
func batches(steps []StepSpec) [][]StepSpec {
	var out [][]StepSpec
	for _, s := range steps {
		if n := len(out); n > 0 && s.Concurrent {
			last := out[n-1]
			if last[0].Concurrent && sameDeps(last[0].DependsOn, s.DependsOn) {
				out[n-1] = append(last, s)
				continue
			}
		}
		out = append(out, []StepSpec{s})
	}
	return out
}

func sameDeps(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
