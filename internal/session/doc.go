// Package session talks to a deployed bot alias through the Lex V2 runtime.
//
// A Client holds one conversation: every Send reuses the same session id, so
// the bot keeps dialog state (elicited slots, the active intent) between
// turns. Chat wraps a Client in a line-oriented REPL.
package session
