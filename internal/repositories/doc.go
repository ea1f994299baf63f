// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Users are soft-deleted via a deleted_at timestamp and excluded from queries by default; videos are
// removed outright together with their row.
//
// Key Implementations:
//   - [UserRepository] : User account persistence with email and username lookups
//   - [VideoRepository] : Course video persistence with course, search, and uploader queries
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42, video #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
