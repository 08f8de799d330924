// Package provisioning drives a declared chain of remote resources to a
// ready state.
//
// # Core Types
//
// StepSpec declares one resource: how to create it, how to find it by name
// when the create call reports a conflict, and how to tell when it is
// usable. Ensure implements the create-or-reuse decision. Orchestrator walks
// the steps in declaration order, gates each on its dependencies, polls
// readiness, and threads each step's ResourceRef into the Refs view of the
// steps that depend on it.
//
// Failures are typed: ResourceConflictError, RemoteOperationError,
// ReadinessFailedError and ReadinessTimeoutError, each wrapped in a
// StepError naming the step. The run stops at the first failure and leaves
// created resources in place; running again resumes through reuse.
//
// # Subpackages
//
//   - bot/: the Lambda-backed Lex bot chain
//   - destroy/: reverse-order teardown of that chain
package provisioning
