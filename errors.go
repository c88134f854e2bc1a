package bptree

import "errors"

// Sentinel errors returned at the persistence and validation boundary.
// Point operations never return an error: Search and Remove report
// absence via a boolean instead.
var (
	// ErrShortRead is returned when a persisted stream ends before the
	// header or the declared element count has been fully consumed.
	ErrShortRead = errors.New("bptree: short read while loading tree")

	// ErrShortWrite is returned when fewer bytes were written than the
	// save routine produced.
	ErrShortWrite = errors.New("bptree: short write while saving tree")

	// ErrBadMagic is returned when a persisted stream does not begin
	// with the "!BPT" magic number.
	ErrBadMagic = errors.New("bptree: bad magic number")

	// ErrBadVersion is returned when a persisted stream's version field
	// is not one this package understands.
	ErrBadVersion = errors.New("bptree: unsupported format version")

	// ErrOrderMismatch is returned by Load when the file's order does
	// not match the order of the tree being loaded into. Callers that
	// want to adopt the file's own order should use LoadFromFile
	// instead.
	ErrOrderMismatch = errors.New("bptree: order mismatch, use LoadFromFile")

	// ErrNilCodec is returned by Save/Load/LoadFromFile when no Codec
	// has been supplied for the key or value type.
	ErrNilCodec = errors.New("bptree: persistence codec not set")

	// ErrInvalidStructure is wrapped by every error Validate returns, so
	// callers can test for it with errors.Is regardless of which
	// invariant failed.
	ErrInvalidStructure = errors.New("bptree: invalid tree structure")
)
