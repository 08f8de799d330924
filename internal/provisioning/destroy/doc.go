// Package destroy tears down a bot deployment.
//
// Resources are looked up by the names in the configuration and deleted in
// reverse dependency order: the function's Lex permission, the alias, the
// bot (with its locales, intents, slots and versions), the function and
// finally the role. Resources that no longer exist are skipped, so a partial
// teardown can be repeated.
package destroy
