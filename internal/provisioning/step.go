package provisioning

import (
	"context"
	"time"

	"github.com/imamik/lexdeploy/internal/util/poll"
)

// ConflictPolicy decides what Ensure does when the name is taken.
type ConflictPolicy int

const (
	// ReuseExisting resolves a name conflict by looking the resource up.
	// It is the zero value.
	ReuseExisting ConflictPolicy = iota
	// Fail reports a name conflict as ResourceConflictError.
	Fail
)

func (p ConflictPolicy) String() string {
	if p == Fail {
		return "fail"
	}
	return "reuse-existing"
}

// CreateFunc issues the create call of a step. deps holds only the refs of
// the step's declared dependencies.
type CreateFunc func(ctx context.Context, deps Refs) (ResourceRef, error)

// Readiness describes how to wait for a created resource to become usable.
type Readiness struct {
	Fetch    func(ctx context.Context, ref ResourceRef, deps Refs) (poll.Snapshot, error)
	Until    poll.Predicate
	Interval time.Duration
	Timeout  time.Duration

	// NotFoundPending treats not-found as "not yet ready".
	NotFoundPending bool
}

// StepSpec declares one node of the provisioning chain.
type StepSpec struct {
	// Name is unique within a run and keys the step's ref.
	Name string
	Kind Kind

	// DependsOn lists earlier steps whose refs Create receives.
	DependsOn []string

	Policy ConflictPolicy
	Create CreateFunc
	// Lookup finds the existing resource by name after a conflict.
	// Required with ReuseExisting.
	Lookup CreateFunc

	// Readiness is nil for resources usable as soon as Create returns.
	Readiness *Readiness

	// Concurrent lets consecutive steps with the same dependency set run
	// together.
	Concurrent bool
}
