// Package schedule implements the interval-conflict and calendar
// aggregation engine: parsing and comparing half-open time intervals,
// deciding whether a candidate reservation may be accepted, and merging
// bookings and events into the ordered view the calendar renders.  The
// package performs no I/O of its own; persistence is reached through the
// Store interface so every decision can be unit tested without a live
// database.
package schedule

import "errors"

// Sentinel errors returned by the engine.  Handlers translate these into
// HTTP status codes: ErrRoomTypeNotFound and ErrEntryNotFound to 404,
// ErrInvalidRange to 400, ErrSlotTaken to 409 and ErrStoreUnavailable to
// 500.  Conflicts and missing references are business outcomes, not
// faults, and are never retried automatically.
var (
	// ErrRoomTypeNotFound indicates the referenced room type does not exist.
	ErrRoomTypeNotFound = errors.New("room type not found")

	// ErrEntryNotFound indicates no booking or event exists under the given id.
	ErrEntryNotFound = errors.New("schedule entry not found")

	// ErrInvalidRange indicates a malformed date/time or start >= end.
	// It is raised before any store access.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrSlotTaken indicates the candidate interval overlaps an existing
	// booking or event on the same room type and day.
	ErrSlotTaken = errors.New("time slot already taken")

	// ErrMissingRoomType indicates the formatter was handed an entry
	// without its room type name, i.e. a dangling reference.
	ErrMissingRoomType = errors.New("missing room type name")

	// ErrStoreUnavailable wraps transport or storage failures from the
	// persistence collaborator.  Callers decide whether to retry.
	ErrStoreUnavailable = errors.New("schedule store unavailable")
)
