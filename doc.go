// Package mmapfile provides a persisted, memory-mapped, fixed-capacity
// array of plain-old-data records.
//
// An array lives in a single file: a small self-describing header (magic
// tag, record type identity, record count) followed by the record data,
// page-aligned so the data region can be mapped directly. Reads and writes
// through the returned slice are reads and writes of the file bytes.
//
// # Creating and opening
//
//	type Sample struct {
//	    Timestamp uint64
//	    Value     float64
//	}
//
//	arr, err := mmapfile.Create[Sample]("samples.mm", 1<<20)
//	if err != nil { ... }
//	defer arr.Close()
//
//	arr.Slice()[0] = Sample{Timestamp: 1, Value: 0.5}
//
// Reopening validates the stored type identity before any byte is
// reinterpreted:
//
//	arr, err := mmapfile.Open[Sample]("samples.mm")
//
// Opening with a different record type fails with *ErrTypeMismatch rather
// than handing out misinterpreted memory.
//
// # Record types
//
// The record type must be plain old data: fixed size, no pointers, maps,
// slices, strings, channels, funcs, or interfaces at any depth, and no
// bool (file bytes are arbitrary; bool only admits 0 and 1). Violations
// are reported as *ErrNotPOD at Create/Open time.
//
// By default the type identity written to the header is a structural
// fingerprint of the record type (kinds, sizes, field offsets), so it is
// stable across builds and renames. WithTag substitutes an explicit
// identity.
//
// # Concurrency
//
// The package performs no locking. The mapping is shared: writes from one
// mapper are visible to all others without ordering or atomicity
// guarantees, and coordinating concurrent writers is entirely the
// caller's concern.
package mmapfile
