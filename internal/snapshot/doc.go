// Package snapshot defines the records persisted by each refresh cycle.
//
// This package contains type definitions only. It imports nothing internal
// except geometry, so every other package can depend on it.
//
// Key constraints:
//   - Only Monster and Player records are ever persisted
//   - Optional host attributes are pointers, never zero-value sentinels
//   - WorldInfo is a singleton; there is exactly one row per database
package snapshot
