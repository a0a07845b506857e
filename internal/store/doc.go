// Package store defines the persistence contracts for users, tasks and
// comments, the unit of work that binds them to one transaction, and the
// sentinel errors every implementation returns.
//
// Implementations live in platform/postgres and platform/memory.
package store
