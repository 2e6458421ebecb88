// Package history records completed cleaning runs in a local SQLite database.
//
// Each row captures the run identifier, the input and output paths, a digest
// of the input bytes, and the counters reported by the cleaner. History is
// an audit aid, not a cache: nothing reads it back to alter cleaning.
//
// Schema changes bump schemaVersion in schema.go; users delete the database
// to adopt the new schema.
package history
