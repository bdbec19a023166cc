// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase depends on these interfaces instead of a concrete UID strategy.
// String IDs (UUIDs) identify comparison runs; numeric IDs (Snowflake) stamp
// audit events with an ordered identifier.
package pkguid
