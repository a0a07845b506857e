// Package service contains the application use cases. Each operation runs
// inside one store.UnitOfWork: it loads the entities it needs, asks the
// policy package whether the actor may proceed, mutates, and saves.
//
// Services depend on the store interfaces and never on a concrete backend.
// Errors from the domain, policy, and store layers are wrapped with %w and
// reach the API layer unchanged in kind, where they are mapped to HTTP
// status codes.
package service
