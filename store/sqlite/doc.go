// Package sqlite provides a file-backed checkpoint store using
// mattn/go-sqlite3. Zero configuration, durable across restarts; suited to
// single-process deployments and tests.
package sqlite
