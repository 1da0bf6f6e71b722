// Package redis provides a Redis checkpoint store with an optional TTL for
// automatic expiry of idle threads.
package redis
