package schedule

import (
	"context"

	"github.com/iliyamo/room-reservation/internal/model"
)

// Store is the minimal read/write contract the engine needs from the
// persistence collaborator.  The implementation owns all ScheduleEntry
// rows; the engine never caches them across calls, so every decision is
// made against a fresh read.
//
// InsertEntryIfNoConflict and UpdateEntryIfNoConflict are the
// serialization points for concurrent submissions: the implementation
// must make the check-then-write atomic per (roomTypeID, date) key, for
// example by taking row locks inside a transaction.  Calls on disjoint
// keys must not block each other.
type Store interface {
	// FindEntriesForRoomAndDay returns every booking and event for the
	// (roomTypeID, day) conflict domain.
	FindEntriesForRoomAndDay(ctx context.Context, roomTypeID, day string) ([]model.ScheduleEntry, error)

	// InsertEntryIfNoConflict persists the entry only if its interval
	// overlaps no existing entry of either kind on the same room type and
	// day.  On overlap it returns ErrSlotTaken and writes nothing.
	InsertEntryIfNoConflict(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error)

	// UpdateEntryIfNoConflict rewrites an existing entry under the same
	// no-overlap rule, ignoring the entry itself when checking.
	UpdateEntryIfNoConflict(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error)

	// FindEntriesInRange returns all entries of both kinds whose day falls
	// in [from, to] inclusive.  Empty bounds leave that side open.
	FindEntriesInRange(ctx context.Context, from, to string) ([]model.ScheduleEntry, error)

	// FindEntry looks up one entry by kind and id, ErrEntryNotFound if absent.
	FindEntry(ctx context.Context, kind model.EntryKind, id string) (model.ScheduleEntry, error)

	// DeleteEntry removes one entry by kind and id, ErrEntryNotFound if absent.
	DeleteEntry(ctx context.Context, kind model.EntryKind, id string) error

	// FindRoomType resolves a room type by id, ErrRoomTypeNotFound if absent.
	FindRoomType(ctx context.Context, id string) (model.RoomType, error)
}
