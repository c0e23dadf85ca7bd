// Package kv defines the durable key-value store the application state lives in.
package kv

import "errors"

// Fixed keys of the persisted state.
const (
	KeyAssignments      = "assignments"
	KeySubmissions      = "submissions"
	KeyLastReminderDate = "lastReminderDate"
)

var ErrNotFound = errors.New("key not found")

// Store is a string-keyed store of raw values. Set replaces the whole value.
type Store interface {
	// Get returns ErrNotFound when key has never been set.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
