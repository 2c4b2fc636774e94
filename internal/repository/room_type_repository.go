package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// RoomTypeRepo provides CRUD access to the room_types table.  Room types
// are administrative reference data: bookings and events point at them,
// so deletion is refused while any entry still references the row.
type RoomTypeRepo struct {
	db *sql.DB
}

// NewRoomTypeRepo returns a RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// List returns all room types ordered by name.
func (r *RoomTypeRepo) List(ctx context.Context) ([]model.RoomType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price, image, created_at FROM room_types ORDER BY name`)
	if err != nil {
		return nil, storeErr("query room types", err)
	}
	defer rows.Close()

	out := make([]model.RoomType, 0)
	for rows.Next() {
		var rt model.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.Price, &rt.Image, &rt.CreatedAt); err != nil {
			return nil, storeErr("scan room type", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate room types", err)
	}
	return out, nil
}

// Create inserts a new room type. A duplicate name is reported as
// ErrRoomTypeExists via the unique index on room_types.name.
func (r *RoomTypeRepo) Create(ctx context.Context, rt model.RoomType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO room_types (id, name, description, price, image, created_at) VALUES (?,?,?,?,?,?)`,
		rt.ID, rt.Name, rt.Description, rt.Price, rt.Image, rt.CreatedAt)
	if err != nil {
		if hasMySQLCode(err, "1062") {
			return ErrRoomTypeExists
		}
		return storeErr("insert room type", err)
	}
	return nil
}

// GetByID fetches one room type.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id string) (model.RoomType, error) {
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx,
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

// GetByName fetches one room type by its unique name. Used by the
// startup seeder to keep seeding idempotent.
func (r *RoomTypeRepo) GetByName(ctx context.Context, name string) (model.RoomType, error) {
	var rt model.RoomType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, image, created_at FROM room_types WHERE name = ? LIMIT 1`, name).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.Price, &rt.Image, &rt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RoomType{}, schedule.ErrRoomTypeNotFound
	}
	if err != nil {
		return model.RoomType{}, storeErr("query room type", err)
	}
	return rt, nil
}

// Update rewrites the mutable fields of a room type.
func (r *RoomTypeRepo) Update(ctx context.Context, rt model.RoomType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_types SET name=?, description=?, price=?, image=? WHERE id=?`,
		rt.Name, rt.Description, rt.Price, rt.Image, rt.ID)
	if err != nil {
		if hasMySQLCode(err, "1062") {
			return ErrRoomTypeExists
		}
		return storeErr("update room type", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if n == 0 {
		return schedule.ErrRoomTypeNotFound
	}
	return nil
}

// Delete removes a room type unless bookings or events still reference
// it.  The reference count is a consistent read, so a reservation
// committed while this transaction is open can slip past it; the
// foreign keys on bookings and events are the hard backstop, and their
// rejection (error 1451) is reported as ErrRoomTypeInUse as well.
func (r *RoomTypeRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var refs int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM bookings WHERE room_type_id = ?) +
		        (SELECT COUNT(*) FROM events   WHERE room_type_id = ?)`, id, id).Scan(&refs)
	if err != nil {
		return storeErr("count references", err)
	}
	if refs > 0 {
		return ErrRoomTypeInUse
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM room_types WHERE id = ?`, id)
	if err != nil {
		if hasMySQLCode(err, "1451") {
			return ErrRoomTypeInUse
		}
		return storeErr("delete room type", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("rows affected", err)
	}
	if n == 0 {
		return schedule.ErrRoomTypeNotFound
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit", err)
	}
	committed = true
	return nil
}
