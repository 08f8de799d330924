package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrResourceConflict  = errors.New("resource conflict")
	ErrRemoteOperation   = errors.New("remote operation failed")
	ErrReadinessFailed   = errors.New("readiness check failed")
	ErrReadinessTimedOut = errors.New("readiness check timed out")

	// ErrInvalidPlan is returned before any remote call when the step list
	// is malformed.
	ErrInvalidPlan = errors.New("invalid step plan")
)

// ResourceConflictError reports a taken name under the Fail policy.
type ResourceConflictError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *ResourceConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists: %v", e.Kind, e.Name, e.Err)
}

func (e *ResourceConflictError) Unwrap() error { return e.Err }

func (e *ResourceConflictError) Is(target error) bool { return target == ErrResourceConflict }

// RemoteOperationError reports a failed create or lookup call.
type RemoteOperationError struct {
	Kind Kind
	Name string
	// Code is the remote error code, if the error carried one.
	Code string
	Err  error
}

func (e *RemoteOperationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: remote operation failed (%s): %v", e.Kind, e.Name, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s: remote operation failed: %v", e.Kind, e.Name, e.Err)
}

func (e *RemoteOperationError) Unwrap() error { return e.Err }

func (e *RemoteOperationError) Is(target error) bool { return target == ErrRemoteOperation }

// ReadinessFailedError reports a resource that reached a terminal failure
// state, or whose status could not be read.
type ReadinessFailedError struct {
	Kind   Kind
	Name   string
	Status string
	Reason string
}

func (e *ReadinessFailedError) Error() string {
	return fmt.Sprintf("%s %s did not become ready: %s", e.Kind, e.Name, e.Reason)
}

func (e *ReadinessFailedError) Is(target error) bool { return target == ErrReadinessFailed }

// ReadinessTimeoutError reports a resource that was still pending when its
// polling budget or the run deadline ran out.
type ReadinessTimeoutError struct {
	Kind       Kind
	Name       string
	Timeout    time.Duration
	Elapsed    time.Duration
	LastStatus string
}

func (e *ReadinessTimeoutError) Error() string {
	status := e.LastStatus
	if status == "" {
		status = "unknown"
	}
	return fmt.Sprintf("%s %s not ready after %v (timeout %v, last status %s)",
		e.Kind, e.Name, e.Elapsed.Round(time.Millisecond), e.Timeout, status)
}

func (e *ReadinessTimeoutError) Is(target error) bool { return target == ErrReadinessTimedOut }

// StepError attributes a failure to the step that produced it.
type StepError struct {
	Step string
	Kind Kind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
