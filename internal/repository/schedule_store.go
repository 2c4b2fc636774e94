package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// ScheduleStore is the MySQL implementation of schedule.Store.  Bookings
// and events live in separate tables but share one conflict domain, so
// every availability decision reads both.
//
// Writes are serialized per (room_type_id, date) key: the check and the
// insert run in one transaction whose SELECT ... FOR UPDATE takes
// next-key locks on the (room_type_id, date) index range of both tables.
// When the key already has rows the loser queues on the record locks and
// its locking read sees the winner's row. When the key is still empty
// the locking read takes only gap locks, which are mutually compatible,
// and two simultaneous first submissions deadlock on insert instead;
// MySQL rolls one back (error 1213) and writeIfNoConflict re-runs that
// transaction so its fresh locking read observes the committed winner
// and reports ErrSlotTaken. Submissions for other rooms or days lock
// disjoint index ranges and do not block.
type ScheduleStore struct {
	db *sql.DB
}

// NewScheduleStore returns a ScheduleStore bound to the given database.
func NewScheduleStore(db *sql.DB) *ScheduleStore { return &ScheduleStore{db: db} }

// DB exposes the underlying pool for callers that need to open their own
// transactions (seeding, tests).
func (s *ScheduleStore) DB() *sql.DB { return s.db }

const (
	selectBookings = `SELECT id, room_type_id, DATE_FORMAT(date, '%Y-%m-%d'), start_time, end_time, name, contact_number, created_at
	                  FROM bookings`
	selectEvents = `SELECT id, room_type_id, DATE_FORMAT(date, '%Y-%m-%d'), start_time, end_time, title, description, created_at
	                FROM events`
)

// storeErr wraps driver failures so callers can treat them uniformly as
// a transient storage outage.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", schedule.ErrStoreUnavailable, op, err)
}

// FindEntriesForRoomAndDay returns every booking and event for the given
// conflict domain, freshly read.
func (s *ScheduleStore) FindEntriesForRoomAndDay(ctx context.Context, roomTypeID, day string) ([]model.ScheduleEntry, error) {
	return s.entriesForRoomAndDay(ctx, s.db, roomTypeID, day, false)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *ScheduleStore) entriesForRoomAndDay(ctx context.Context, q querier, roomTypeID, day string, forUpdate bool) ([]model.ScheduleEntry, error) {
	suffix := ""
	if forUpdate {
		suffix = " FOR UPDATE"
	}

	var entries []model.ScheduleEntry

	rows, err := q.QueryContext(ctx, selectBookings+` WHERE room_type_id = ? AND date = ?`+suffix, roomTypeID, day)
	if err != nil {
		return nil, storeErr("query bookings", err)
	}
	entries, err = appendBookingRows(entries, rows)
	if err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx, selectEvents+` WHERE room_type_id = ? AND date = ?`+suffix, roomTypeID, day)
	if err != nil {
		return nil, storeErr("query events", err)
	}
	return appendEventRows(entries, rows)
}

func appendBookingRows(entries []model.ScheduleEntry, rows *sql.Rows) ([]model.ScheduleEntry, error) {
	defer rows.Close()
	for rows.Next() {
		e := model.ScheduleEntry{Kind: model.KindBooking}
		if err := rows.Scan(&e.ID, &e.RoomTypeID, &e.Date, &e.StartTime, &e.EndTime, &e.Name, &e.ContactNumber, &e.CreatedAt); err != nil {
			return nil, storeErr("scan booking", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate bookings", err)
	}
	return entries, nil
}

func appendEventRows(entries []model.ScheduleEntry, rows *sql.Rows) ([]model.ScheduleEntry, error) {
	defer rows.Close()
	for rows.Next() {
		e := model.ScheduleEntry{Kind: model.KindEvent}
		if err := rows.Scan(&e.ID, &e.RoomTypeID, &e.Date, &e.StartTime, &e.EndTime, &e.Title, &e.Description, &e.CreatedAt); err != nil {
			return nil, storeErr("scan event", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate events", err)
	}
	return entries, nil
}

// InsertEntryIfNoConflict atomically checks the (room_type_id, date)
// conflict domain and inserts the entry.  On overlap nothing is written
// and schedule.ErrSlotTaken is returned; on timeout or failure the
// transaction rolls back, leaving no partial row.
func (s *ScheduleStore) InsertEntryIfNoConflict(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error) {
	return s.writeIfNoConflict(ctx, entry, "")
}

// UpdateEntryIfNoConflict rewrites an existing entry under the same
// no-overlap rule, ignoring the entry's own row when checking.
func (s *ScheduleStore) UpdateEntryIfNoConflict(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error) {
	return s.writeIfNoConflict(ctx, entry, entry.ID)
}

// lockRetryAttempts bounds the re-runs of a conflict-checked write when
// MySQL resolves gap-lock contention by rolling one transaction back.
const lockRetryAttempts = 3

// isLockContention reports whether err is a MySQL deadlock rollback or
// lock wait timeout (server errors 1213 and 1205), the two outcomes of
// concurrent first submissions racing on an empty index range.
func isLockContention(err error) bool {
	return hasMySQLCode(err, "1213") || hasMySQLCode(err, "1205")
}

// retryOnContention runs op until it returns anything other than a lock
// contention error, at most attempts times. Each re-run repeats the
// whole check-then-write transaction, so a loser that re-runs after the
// winner committed sees the new row and fails with ErrSlotTaken rather
// than a storage fault.
func retryOnContention(attempts int, op func() (model.ScheduleEntry, error)) (model.ScheduleEntry, error) {
	var (
		entry model.ScheduleEntry
		err   error
	)
	for i := 0; i < attempts; i++ {
		entry, err = op()
		if !isLockContention(err) {
			return entry, err
		}
	}
	return entry, err
}

func (s *ScheduleStore) writeIfNoConflict(ctx context.Context, entry model.ScheduleEntry, excludeID string) (model.ScheduleEntry, error) {
	return retryOnContention(lockRetryAttempts, func() (model.ScheduleEntry, error) {
		return s.writeEntryTx(ctx, entry, excludeID)
	})
}

func (s *ScheduleStore) writeEntryTx(ctx context.Context, entry model.ScheduleEntry, excludeID string) (model.ScheduleEntry, error) {
	iv, err := schedule.ParseInterval(entry.StartTime, entry.EndTime)
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ScheduleEntry{}, storeErr("begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Locking read over both tables: this is the serialization point for
	// the (room_type_id, date) key.
	existing, err := s.entriesForRoomAndDay(ctx, tx, entry.RoomTypeID, entry.Date, true)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if schedule.ConflictsWith(existing, iv, excludeID) {
		return model.ScheduleEntry{}, schedule.ErrSlotTaken
	}

	if excludeID == "" {
		err = insertEntryTx(ctx, tx, entry)
	} else {
		err = updateEntryTx(ctx, tx, entry)
	}
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.ScheduleEntry{}, storeErr("commit", err)
	}
	committed = true
	return entry, nil
}

func insertEntryTx(ctx context.Context, tx *sql.Tx, e model.ScheduleEntry) error {
	var err error
	switch e.Kind {
	case model.KindBooking:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bookings (id, room_type_id, date, start_time, end_time, name, contact_number, created_at) VALUES (?,?,?,?,?,?,?,?)`,
			e.ID, e.RoomTypeID, e.Date, e.StartTime, e.EndTime, e.Name, e.ContactNumber, e.CreatedAt)
	case model.KindEvent:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (id, room_type_id, date, start_time, end_time, title, description, created_at) VALUES (?,?,?,?,?,?,?,?)`,
			e.ID, e.RoomTypeID, e.Date, e.StartTime, e.EndTime, e.Title, e.Description, e.CreatedAt)
	default:
		return fmt.Errorf("%w: unknown entry kind %q", schedule.ErrInvalidRange, e.Kind)
	}
	if err != nil {
		return storeErr("insert entry", err)
	}
	return nil
}

func updateEntryTx(ctx context.Context, tx *sql.Tx, e model.ScheduleEntry) error {
	var (
		res sql.Result
		err error
	)
	switch e.Kind {
	case model.KindBooking:
		res, err = tx.ExecContext(ctx,
			`UPDATE bookings SET room_type_id=?, date=?, start_time=?, end_time=?, name=?, contact_number=? WHERE id=?`,
			e.RoomTypeID, e.Date, e.StartTime, e.EndTime, e.Name, e.ContactNumber, e.ID)
	case model.KindEvent:
		res, err = tx.ExecContext(ctx,
			`UPDATE events SET room_type_id=?, date=?, start_time=?, end_time=?, title=?, description=? WHERE id=?`,
			e.RoomTypeID, e.Date, e.StartTime, e.EndTime, e.Title, e.Description, e.ID)
	default:
		return fmt.Errorf("%w: unknown entry kind %q", schedule.ErrInvalidRange, e.Kind)
	}
	if err != nil {
		return storeErr("update entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if n == 0 {
		return schedule.ErrEntryNotFound
	}
	return nil
}

// FindEntriesInRange returns all entries of both kinds whose day falls
// in [from, to] inclusive.  Empty bounds leave that side open.
func (s *ScheduleStore) FindEntriesInRange(ctx context.Context, from, to string) ([]model.ScheduleEntry, error) {
	cond := ""
	var args []any
	if from != "" {
		cond += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		cond += " AND date <= ?"
		args = append(args, to)
	}

	var entries []model.ScheduleEntry

	rows, err := s.db.QueryContext(ctx, selectBookings+` WHERE 1=1`+cond, args...)
	if err != nil {
		return nil, storeErr("query bookings", err)
	}
	entries, err = appendBookingRows(entries, rows)
	if err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, selectEvents+` WHERE 1=1`+cond, args...)
	if err != nil {
		return nil, storeErr("query events", err)
	}
	return appendEventRows(entries, rows)
}

// FindEntry looks up a single entry by kind and id.
func (s *ScheduleStore) FindEntry(ctx context.Context, kind model.EntryKind, id string) (model.ScheduleEntry, error) {
	e := model.ScheduleEntry{Kind: kind}
	var err error
	switch kind {
	case model.KindBooking:
		err = s.db.QueryRowContext(ctx, selectBookings+` WHERE id = ? LIMIT 1`, id).
			Scan(&e.ID, &e.RoomTypeID, &e.Date, &e.StartTime, &e.EndTime, &e.Name, &e.ContactNumber, &e.CreatedAt)
	case model.KindEvent:
		err = s.db.QueryRowContext(ctx, selectEvents+` WHERE id = ? LIMIT 1`, id).
			Scan(&e.ID, &e.RoomTypeID, &e.Date, &e.StartTime, &e.EndTime, &e.Title, &e.Description, &e.CreatedAt)
	default:
		return model.ScheduleEntry{}, schedule.ErrEntryNotFound
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScheduleEntry{}, schedule.ErrEntryNotFound
	}
	if err != nil {
		return model.ScheduleEntry{}, storeErr("query entry", err)
	}
	return e, nil
}

// DeleteEntry removes a single entry by kind and id. Deletion has no
// cascading side effects beyond removing the row.
func (s *ScheduleStore) DeleteEntry(ctx context.Context, kind model.EntryKind, id string) error {
	var table string
	switch kind {
	case model.KindBooking:
		table = "bookings"
	case model.KindEvent:
		table = "events"
	default:
		return schedule.ErrEntryNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if n == 0 {
		return schedule.ErrEntryNotFound
	}
	return nil
}

// FindRoomType resolves a room type by id.
func (s *ScheduleStore) FindRoomType(ctx context.Context, id string) (model.RoomType, error) {
	var rt model.RoomType
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, image, created_at FROM room_types WHERE id = ? LIMIT 1`, id).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.Price, &rt.Image, &rt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RoomType{}, schedule.ErrRoomTypeNotFound
	}
	if err != nil {
		return model.RoomType{}, storeErr("query room type", err)
	}
	return rt, nil
}
