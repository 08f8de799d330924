// Package s3 provides a small S3 client for publishing deployment records.
//
// It creates the target bucket on demand and reads, writes and deletes
// single objects. Missing buckets and keys are reported through IsNotFound.
package s3
