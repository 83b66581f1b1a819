// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and applies the schema with inline
// idempotent migrations on startup. Repositories implement the domain
// interfaces: PollRepository, VoteRepository, LikeRepository.
package database
