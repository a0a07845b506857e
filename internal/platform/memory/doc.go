// Package memory implements the store interfaces in process memory.
//
// It is meant for local development and tests. Units of work are
// serialized under one mutex. A failed read-write unit is undone by
// restoring a snapshot taken when it started; read-only units work on the
// live state and reject writes.
package memory
