// Package naming provides consistent names for provisioning steps and the
// AWS identifiers derived from them.
//
// Step names are the keys of a run's resource refs: fixed names for singleton
// resources ("role", "bot", ...) and path-like names for repeated ones
// ("intent/{intent}", "slot/{intent}/{slot}"). ARNs are built from region and
// account rather than parsed from API responses where the APIs do not
// return them.
package naming
