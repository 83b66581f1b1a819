// Package app provides the application service layer.
//
// Orchestrates the mutation use cases: create poll, cast vote, toggle like,
// plus the snapshot reads. Sits between HTTP handlers and domain repositories.
// Depends on domain interfaces, not concrete implementations.
package app
