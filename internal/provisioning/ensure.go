package provisioning

import (
	"context"
	"errors"
)

// Resolution records how Ensure obtained a ref.
type Resolution string

const (
	ResolutionCreated Resolution = "created"
	ResolutionReused  Resolution = "reused"
)

// EnsureOp describes one create-or-reuse operation.
type EnsureOp struct {
	Kind   Kind
	Name   string
	Policy ConflictPolicy
	Create func(ctx context.Context) (ResourceRef, error)
	// Lookup is called after a name conflict under ReuseExisting.
	Lookup func(ctx context.Context) (ResourceRef, error)
}

// Ensure creates the resource. A name conflict, signalled by an error
// implementing ConflictingName() string, is resolved according to
// op.Policy: ReuseExisting looks the resource up without reconciling any
// differing configuration, Fail returns ResourceConflictError. Every other
// error becomes RemoteOperationError.
//
// Ensure is not safe for concurrent calls on the same name.
func Ensure(ctx context.Context, op EnsureOp) (ResourceRef, Resolution, error) {
	ref, err := op.Create(ctx)
	if err == nil {
		return withKind(ref, op.Kind), ResolutionCreated, nil
	}

	name, conflict := conflictingName(err)
	if !conflict {
		return ResourceRef{}, "", remoteError(op, err)
	}
	if name == "" {
		name = op.Name
	}

	if op.Policy == Fail || op.Lookup == nil {
		return ResourceRef{}, "", &ResourceConflictError{Kind: op.Kind, Name: name, Err: err}
	}

	ref, err = op.Lookup(ctx)
	if err != nil {
		return ResourceRef{}, "", remoteError(op, err)
	}
	return withKind(ref, op.Kind), ResolutionReused, nil
}

func conflictingName(err error) (string, bool) {
	var c interface{ ConflictingName() string }
	if !errors.As(err, &c) {
		return "", false
	}
	return c.ConflictingName(), true
}

func remoteError(op EnsureOp, err error) error {
	var coded interface{ ErrorCode() string }
	code := ""
	if errors.As(err, &coded) {
		code = coded.ErrorCode()
	}
	return &RemoteOperationError{Kind: op.Kind, Name: op.Name, Code: code, Err: err}
}

func withKind(ref ResourceRef, kind Kind) ResourceRef {
	if ref.Kind == "" {
		ref.Kind = kind
	}
	return ref
}
