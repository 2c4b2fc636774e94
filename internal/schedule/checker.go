package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/room-reservation/internal/model"
)

// Candidate is a strongly typed reservation request.  Validation happens
// here in the engine, not in the storage layer: malformed input is
// rejected before any store round trip.
type Candidate struct {
	Kind       model.EntryKind
	RoomTypeID string
	Date       string // "YYYY-MM-DD"
	StartTime  string // "HH:MM"
	EndTime    string // "HH:MM"

	// Booking payload.
	Name          string
	ContactNumber string

	// Event payload.
	Title       string
	Description string
}

// Checker decides whether a candidate reservation may be accepted and,
// if so, persists it.  It is safe for concurrent use: the race-critical
// check-then-insert is delegated to the Store's atomic operations, so
// two overlapping submissions for the same (roomTypeID, date) key can
// never both succeed.
type Checker struct {
	store Store
	newID func() string
	now   func() time.Time
}

// NewChecker wires a Checker to its store.  newID and now may be nil, in
// which case UUID generation and wall-clock time are used; tests inject
// deterministic replacements.
func NewChecker(store Store, newID func() string, now func() time.Time) *Checker {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Checker{store: store, newID: newID, now: now}
}

// CheckAndReserve validates the candidate, verifies its room type exists
// and atomically inserts it if no existing booking or event on the same
// room type and day overlaps its interval.  Exactly one entry is durably
// created on success and none on failure; a submission that times out
// against the store leaves nothing behind.
//
// Failure modes: ErrInvalidRange (bad date/time or start >= end, raised
// before any store access), ErrRoomTypeNotFound, ErrSlotTaken, or a
// wrapped ErrStoreUnavailable.
func (c *Checker) CheckAndReserve(ctx context.Context, cand Candidate) (model.ScheduleEntry, error) {
	entry, err := c.validate(cand)
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	if _, err := c.store.FindRoomType(ctx, cand.RoomTypeID); err != nil {
		return model.ScheduleEntry{}, err
	}

	entry.ID = c.newID()
	entry.CreatedAt = c.now().UTC()

	return c.store.InsertEntryIfNoConflict(ctx, entry)
}

// CheckAndUpdate re-validates an existing event-kind entry and rewrites
// it under the same conflict rule, excluding the entry itself from the
// overlap check.  The original deployment updated events blindly; here
// an update passes through the same conflict domain as a fresh
// submission.
func (c *Checker) CheckAndUpdate(ctx context.Context, id string, cand Candidate) (model.ScheduleEntry, error) {
	entry, err := c.validate(cand)
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	existing, err := c.store.FindEntry(ctx, cand.Kind, id)
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	if _, err := c.store.FindRoomType(ctx, cand.RoomTypeID); err != nil {
		return model.ScheduleEntry{}, err
	}

	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	return c.store.UpdateEntryIfNoConflict(ctx, entry)
}

// validate checks syntax and the start < end invariant, returning the
// entry skeleton on success.  No store access happens here.
func (c *Checker) validate(cand Candidate) (model.ScheduleEntry, error) {
	if !cand.Kind.Valid() {
		return model.ScheduleEntry{}, fmt.Errorf("%w: unknown entry kind %q", ErrInvalidRange, cand.Kind)
	}
	day, err := ParseDay(cand.Date)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if _, err := ParseInterval(cand.StartTime, cand.EndTime); err != nil {
		return model.ScheduleEntry{}, err
	}
	return model.ScheduleEntry{
		Kind:          cand.Kind,
		RoomTypeID:    cand.RoomTypeID,
		Date:          day,
		StartTime:     cand.StartTime,
		EndTime:       cand.EndTime,
		Name:          cand.Name,
		ContactNumber: cand.ContactNumber,
		Title:         cand.Title,
		Description:   cand.Description,
	}, nil
}

// ConflictsWith reports whether the candidate interval overlaps any of
// the given entries, skipping the entry whose id equals excludeID.
// Store implementations share this predicate so the conflict rule lives
// in exactly one place.  Unparseable stored times are treated as
// conflicting rather than silently free.
func ConflictsWith(entries []model.ScheduleEntry, candidate Interval, excludeID string) bool {
	for _, e := range entries {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		iv, err := ParseInterval(e.StartTime, e.EndTime)
		if err != nil {
			return true
		}
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
