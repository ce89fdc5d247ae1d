// Package engine implements the snapshot refresh cycle.
//
// The engine turns one host snapshot into one committed database snapshot.
// It keeps no state between cycles; the only counter lives in Driver and
// gates cadence.
//
// ARCHITECTURE:
//
// Host-Driven, Single-Threaded:
// The host calls Driver.Tick once per simulation tick from a single
// goroutine. Every N loaded ticks the driver runs one cycle synchronously.
// The engine spawns no goroutines and never waits on anything but the
// storage I/O of its own transaction.
//
// Cycle Flow:
// 1. Derive the world clock from the raw tick counter
// 2. Collect the host entity sequence into a local slice (the host list may
// mutate; classification only ever sees the copy)
// 3. Resolve the reference position once from that copy
// 4. Classify each entity, measure its distance, read optional attributes
// 5. In one transaction: clear entities, insert rows, upsert world info
//
// ERROR HANDLING: A failed cycle is rolled back, logged with its cycle id
// and skipped. The next cadence retries unconditionally. No storage error
// ever stops the host.
package engine
