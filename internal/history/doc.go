// Package history persists one row per processed pair in a SQLite database
// so past runs can be listed with "cuesplit history".
//
// The store is opened once per run. Writes retry briefly when another
// cuesplit process holds the database lock; callers treat a failed write as
// a warning, never as a failed pair.
package history
