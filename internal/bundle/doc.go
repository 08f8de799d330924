// Package bundle provides the deployment package uploaded as the Lambda
// function code.
//
// The default source packages the built-in echo handler into a zip archive
// in memory. The archive is deterministic (fixed entry times and order), so
// its bytes can take part in the deployment fingerprint.
package bundle
