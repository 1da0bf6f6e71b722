// Package store defines the checkpoint persistence contract for
// conversation threads, plus an in-memory implementation.
//
// A checkpoint is the durable snapshot that lets a thread suspend for human
// input and resume across process restarts. Backends:
//
//   - MemoryStore (this package): ephemeral, for tests and single-process
//     sessions that do not need durability
//   - store/sqlite: file-backed, zero-configuration durability
//   - store/postgres: production deployments, pooled connections, JSONB
//   - store/redis: low-latency storage with optional TTL expiry
//
// All backends implement the same Store interface and guarantee that a save
// for a thread is visible to the next load for that thread.
package store
