// Package postgres provides a PostgreSQL checkpoint store on pgx/v5 with
// pooled connections and JSONB state. The pool is injectable, so tests can
// drive the store with pgxmock.
package postgres
