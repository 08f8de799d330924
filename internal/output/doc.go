// Package output persists the record of a successful deployment.
//
// The record is the hand-off to clients of the bot: the bot and alias ids
// a runtime session needs, plus the region, locale, version and function it
// was built from. It is written as JSON to a local file and optionally
// copied to S3.
package output
