// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. Stores are built over store.DBTX so the
// same code runs against a pool or inside a transaction; UnitOfWork binds
// all three stores to one transaction per call.
//
// The schema is managed by the embedded goose migrations (see Migrate).
package postgres
