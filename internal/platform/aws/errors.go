package aws

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/smithy-go"
)

// ConflictError reports that a resource with the requested name already
// exists.
type ConflictError struct {
	Kind    string
	Name    string
	Code    string
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists (%s): %s", e.Kind, e.Name, e.Code, e.Message)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// ConflictingName returns the name that collided.
func (e *ConflictError) ConflictingName() string { return e.Name }

// ErrorCode returns the remote error code.
func (e *ConflictError) ErrorCode() string { return e.Code }

// NotFoundError reports that a resource does not exist.
type NotFoundError struct {
	Kind string
	Name string
	Code string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found (%s)", e.Kind, e.Name, e.Code)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// NotFound marks the error as an absent resource.
func (e *NotFoundError) NotFound() bool { return true }

// ErrorCode returns the remote error code.
func (e *NotFoundError) ErrorCode() string { return e.Code }

var (
	// Codes that always mean a duplicate name on a create call.
	conflictCodes = []string{
		"EntityAlreadyExists", // IAM
	}

	// Codes that mean a duplicate only when the message says so. Lambda also
	// uses ResourceConflictException for "update in progress" and Lex returns
	// ConflictException while a resource is changing state.
	ambiguousConflictCodes = []string{
		"ResourceConflictException",   // Lambda
		"ConflictException",           // Lex Models V2
		"PreconditionFailedException", // Lex Models V2
	}

	notFoundCodes = []string{
		"NoSuchEntity",              // IAM
		"ResourceNotFoundException", // Lambda, Lex Models V2
	}
)

// classify converts an SDK error into ConflictError or NotFoundError when its
// code says so, and otherwise wraps it with the failed operation. The smithy
// error stays in the chain either way.
func classify(err error, op, kind, name string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case isConflict(code, apiErr.ErrorMessage()):
			return &ConflictError{Kind: kind, Name: name, Code: code, Message: apiErr.ErrorMessage(), Err: err}
		case slices.Contains(notFoundCodes, code):
			return &NotFoundError{Kind: kind, Name: name, Code: code, Err: err}
		}
	}

	return fmt.Errorf("failed to %s %s %s: %w", op, kind, name, err)
}

func isConflict(code, message string) bool {
	if slices.Contains(conflictCodes, code) {
		return true
	}
	return slices.Contains(ambiguousConflictCodes, code) &&
		strings.Contains(strings.ToLower(message), "already exist")
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict checks if an error indicates a duplicate name.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ErrorCode returns the remote error code carried by err, or "".
func ErrorCode(err error) string {
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}
