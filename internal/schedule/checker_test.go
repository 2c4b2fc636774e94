package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// fakeStore is an in-memory Store whose conflict insert is atomic under
// a mutex, mirroring the transactional guarantee of the MySQL adapter.
// It counts calls so tests can assert that validation failures never
// reach the store.
type fakeStore struct {
	mu        sync.Mutex
	roomTypes map[string]model.RoomType
	entries   []model.ScheduleEntry
	calls     int
}

func newFakeStore(roomTypes ...model.RoomType) *fakeStore {
	s := &fakeStore{roomTypes: make(map[string]model.RoomType)}
	for _, rt := range roomTypes {
		s.roomTypes[rt.ID] = rt
	}
	return s
}

func (s *fakeStore) FindEntriesForRoomAndDay(ctx context.Context, roomTypeID, day string) ([]model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.entriesForLocked(roomTypeID, day), nil
}

func (s *fakeStore) entriesForLocked(roomTypeID, day string) []model.ScheduleEntry {
	var out []model.ScheduleEntry
	for _, e := range s.entries {
		if e.RoomTypeID == roomTypeID && e.Date == day {
			out = append(out, e)
		}
	}
	return out
}

func (s *fakeStore) InsertEntryIfNoConflict(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	iv, err := ParseInterval(entry.StartTime, entry.EndTime)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if ConflictsWith(s.entriesForLocked(entry.RoomTypeID, entry.Date), iv, "") {
		return model.ScheduleEntry{}, ErrSlotTaken
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *fakeStore) UpdateEntryIfNoConflict(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	iv, err := ParseInterval(entry.StartTime, entry.EndTime)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if ConflictsWith(s.entriesForLocked(entry.RoomTypeID, entry.Date), iv, entry.ID) {
		return model.ScheduleEntry{}, ErrSlotTaken
	}
	for i := range s.entries {
		if s.entries[i].ID == entry.ID && s.entries[i].Kind == entry.Kind {
			s.entries[i] = entry
			return entry, nil
		}
	}
	return model.ScheduleEntry{}, ErrEntryNotFound
}

func (s *fakeStore) FindEntriesInRange(ctx context.Context, from, to string) ([]model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	var out []model.ScheduleEntry
	for _, e := range s.entries {
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeStore) FindEntry(ctx context.Context, kind model.EntryKind, id string) (model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for _, e := range s.entries {
		if e.Kind == kind && e.ID == id {
			return e, nil
		}
	}
	return model.ScheduleEntry{}, ErrEntryNotFound
}

func (s *fakeStore) DeleteEntry(ctx context.Context, kind model.EntryKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for i, e := range s.entries {
		if e.Kind == kind && e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

func (s *fakeStore) FindRoomType(ctx context.Context, id string) (model.RoomType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	rt, ok := s.roomTypes[id]
	if !ok {
		return model.RoomType{}, ErrRoomTypeNotFound
	}
	return rt, nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

func bookingCandidate(start, end string) Candidate {
	return Candidate{
		Kind:          model.KindBooking,
		RoomTypeID:    "r1",
		Date:          "2024-06-01",
		StartTime:     start,
		EndTime:       end,
		Name:          "Alice",
		ContactNumber: "555-0100",
	}
}

func TestCheckAndReserveScenario(t *testing.T) {
	// RoomType r1 with an existing 09:00-10:00 booking: 09:30-10:30 must
	// be rejected, 10:00-11:00 must succeed (boundary-exclusive rule).
	store := newFakeStore(model.RoomType{ID: "r1", Name: "Conference Room"})
	checker := NewChecker(store, sequentialIDs(), fixedNow)
	ctx := context.Background()

	first, err := checker.CheckAndReserve(ctx, bookingCandidate("09:00", "10:00"))
	if err != nil {
		t.Fatalf("first reservation: %v", err)
	}
	if first.ID == "" || first.Date != "2024-06-01" {
		t.Fatalf("unexpected entry: %+v", first)
	}

	if _, err := checker.CheckAndReserve(ctx, bookingCandidate("09:30", "10:30")); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("overlapping reservation error = %v, want ErrSlotTaken", err)
	}

	second, err := checker.CheckAndReserve(ctx, bookingCandidate("10:00", "11:00"))
	if err != nil {
		t.Fatalf("back-to-back reservation: %v", err)
	}
	if second.ID == first.ID {
		t.Error("second reservation reused the first id")
	}
	// The rejected submission must not have mutated the first entry.
	got, err := store.FindEntry(ctx, model.KindBooking, first.ID)
	if err != nil || got.StartTime != "09:00" || got.EndTime != "10:00" {
		t.Errorf("first entry changed: %+v, err %v", got, err)
	}
}

func TestCheckAndReserveCrossKindConflict(t *testing.T) {
	store := newFakeStore(model.RoomType{ID: "r1", Name: "Studio"})
	checker := NewChecker(store, sequentialIDs(), fixedNow)
	ctx := context.Background()

	event := Candidate{
		Kind:       model.KindEvent,
		RoomTypeID: "r1",
		Date:       "2024-06-01",
		StartTime:  "14:00",
		EndTime:    "15:00",
		Title:      "Maintenance",
	}
	if _, err := checker.CheckAndReserve(ctx, event); err != nil {
		t.Fatalf("event: %v", err)
	}

	// An event blocks a booking on the same room/day and vice versa.
	if _, err := checker.CheckAndReserve(ctx, bookingCandidate("14:30", "15:30")); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("booking over event error = %v, want ErrSlotTaken", err)
	}

	if _, err := checker.CheckAndReserve(ctx, bookingCandidate("12:00", "13:00")); err != nil {
		t.Fatalf("disjoint booking: %v", err)
	}
	event.StartTime, event.EndTime = "12:30", "13:30"
	if _, err := checker.CheckAndReserve(ctx, event); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("event over booking error = %v, want ErrSlotTaken", err)
	}
}

func TestCheckAndReserveValidation(t *testing.T) {
	store := newFakeStore(model.RoomType{ID: "r1", Name: "Studio"})
	checker := NewChecker(store, sequentialIDs(), fixedNow)
	ctx := context.Background()

	cases := []struct {
		name string
		cand Candidate
		want error
	}{
		{"inverted range", bookingCandidate("11:00", "10:00"), ErrInvalidRange},
		{"zero length", bookingCandidate("10:00", "10:00"), ErrInvalidRange},
		{"bad time", bookingCandidate("25:00", "26:00"), ErrInvalidRange},
		{"bad kind", Candidate{Kind: "meeting", RoomTypeID: "r1", Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"}, ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := store.callCount()
			_, err := checker.CheckAndReserve(ctx, tc.cand)
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
			// Validation failures must not cost a store round trip.
			if store.callCount() != before {
				t.Error("store was queried for invalid input")
			}
		})
	}

	cand := bookingCandidate("09:00", "10:00")
	cand.Date = "2024-06-31"
	if _, err := checker.CheckAndReserve(ctx, cand); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("impossible date error = %v, want ErrInvalidRange", err)
	}

	cand = bookingCandidate("09:00", "10:00")
	cand.RoomTypeID = "ghost"
	if _, err := checker.CheckAndReserve(ctx, cand); !errors.Is(err, ErrRoomTypeNotFound) {
		t.Errorf("unknown room error = %v, want ErrRoomTypeNotFound", err)
	}
}

func TestCheckAndReserveConcurrentOverlap(t *testing.T) {
	// N concurrent submissions for mutually overlapping windows on the
	// same room/day: exactly one may win, regardless of arrival order.
	store := newFakeStore(model.RoomType{ID: "r1", Name: "Conference Room"})
	checker := NewChecker(store, sequentialIDs(), fixedNow)

	const n = 16
	var wg sync.WaitGroup
	var successes, conflicts int32
	var mu sync.Mutex
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every window covers 09:15-10:00, so all pairs overlap.
			cand := bookingCandidate(FormatMinutes(540+i), FormatMinutes(600+i))
			_, err := checker.CheckAndReserve(context.Background(), cand)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 1 || conflicts != n-1 {
		t.Errorf("got %d successes and %d conflicts, want 1 and %d", successes, conflicts, n-1)
	}
	entries, _ := store.FindEntriesForRoomAndDay(context.Background(), "r1", "2024-06-01")
	if len(entries) != 1 {
		t.Errorf("store holds %d entries, want 1", len(entries))
	}
}

func TestCheckAndUpdateExcludesSelf(t *testing.T) {
	store := newFakeStore(model.RoomType{ID: "r1", Name: "Studio"})
	checker := NewChecker(store, sequentialIDs(), fixedNow)
	ctx := context.Background()

	created, err := checker.CheckAndReserve(ctx, Candidate{
		Kind:       model.KindEvent,
		RoomTypeID: "r1",
		Date:       "2024-06-01",
		StartTime:  "09:00",
		EndTime:    "10:00",
		Title:      "Standup",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Shifting the event within its own old window is allowed: the entry
	// does not conflict with itself.
	updated, err := checker.CheckAndUpdate(ctx, created.ID, Candidate{
		Kind:       model.KindEvent,
		RoomTypeID: "r1",
		Date:       "2024-06-01",
		StartTime:  "09:30",
		EndTime:    "10:30",
		Title:      "Standup (moved)",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StartTime != "09:30" || updated.Title != "Standup (moved)" {
		t.Errorf("update not applied: %+v", updated)
	}

	// A second entry still blocks the move.
	if _, err := checker.CheckAndReserve(ctx, bookingCandidate("11:00", "12:00")); err != nil {
		t.Fatalf("blocking booking: %v", err)
	}
	_, err = checker.CheckAndUpdate(ctx, created.ID, Candidate{
		Kind:       model.KindEvent,
		RoomTypeID: "r1",
		Date:       "2024-06-01",
		StartTime:  "11:30",
		EndTime:    "12:30",
		Title:      "Standup",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("update into occupied slot error = %v, want ErrSlotTaken", err)
	}

	if _, err := checker.CheckAndUpdate(ctx, "missing", Candidate{
		Kind:       model.KindEvent,
		RoomTypeID: "r1",
		Date:       "2024-06-01",
		StartTime:  "13:00",
		EndTime:    "14:00",
		Title:      "Ghost",
	}); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("update of missing entry error = %v, want ErrEntryNotFound", err)
	}
}
