package storage

import "fmt"

// ConfigError reports a malformed or unreadable store document. It is
// fatal at startup: the interactive session must not start on top of a
// document that failed to load.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PersistenceError reports a failed write of the store document. The
// in-memory store is still valid; the mutation is just not durable yet.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
