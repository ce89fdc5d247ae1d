// Package store provides SQLite-backed storage for entity snapshots.
//
// The store holds exactly one snapshot at a time:
//   - entities: the classified entities of the last completed cycle
//   - world_time: a single row (id = 1) with the last clock reading
//
// # Refresh Semantics
//
// Every cycle replaces the snapshot inside one transaction: delete all
// entity rows, insert the new rows, upsert the world_time row. Readers of
// the database file see either the previous snapshot or the new one, never
// a mix. Any failure rolls the whole transaction back.
//
// The world_time upsert is a single INSERT ... ON CONFLICT(id) DO UPDATE
// keyed on the sentinel id, never a read followed by a write.
//
// # Database Configuration
//
//   - WAL mode: readers see the last committed snapshot during a refresh
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: the store is the only writer
package store
