// Package retry retries an operation with exponential backoff while a
// caller-supplied predicate classifies its error as transient.
//
// It covers eventual-consistency windows of remote APIs, such as a freshly
// created IAM role not yet assumable by Lambda. Readiness waits belong to
// package poll, which uses a fixed interval and an overall timeout instead.
package retry
