// Package aws wraps the IAM, Lambda, Lex Models V2 and STS APIs behind
// small per-kind operations used by the bot provisioner.
//
// Every operation is synchronous and performs no retries of its own beyond
// the SDK's transport retryer. Duplicate-name failures are surfaced as
// [*ConflictError] and absent resources as [*NotFoundError], so callers can
// branch on errors.As without knowing AWS error codes. Status-bearing reads
// return snapshots whose Terminal method reports states the resource cannot
// leave on its own.
package aws
