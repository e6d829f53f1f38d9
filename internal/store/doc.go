// Package store provides persistent storage for nimbuzyn using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with one interface
// per component of the data layer:
//
//   - UserStore: Accounts, credentials, preferences
//   - ContactStore: Directed contact graph with snapshot display names
//   - ChatStore: Canonical 1:1 chats and their append-only message logs
//   - ProductStore: Per-owner inventory with derived profit values
//
// SQLiteStore implements all interfaces in a single struct so the process
// keeps exactly one storage handle, while callers depend only on the
// interface they consume.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode so readers are never blocked by the
// writer and a crash mid-write cannot corrupt the file:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is created idempotently on every open; existing data is never
// dropped or mutated.
//
// # Invariants enforced here
//
//   - username and public ID uniqueness via UNIQUE constraints (not
//     application pre-checks, so there is no check-then-act race)
//   - one chat per unordered participant pair, stored canonically with the
//     lexicographically smaller ID first
//   - message insert and chat preview update share one transaction
//   - (owner, code) uniqueness for products on both insert and update
//
// Timestamps are stored as RFC3339 TEXT in UTC, which sorts
// lexicographically in time order. Enum columns hold closed string tokens;
// an unrecognized token scans as ErrCorruptRecord rather than defaulting.
//
// All methods accept context.Context for cancellation support.
package store
