// Package repository implements the persistence layer on MySQL through
// database/sql.  Domain-level failures (slot taken, room type missing,
// entry missing) are reported with the sentinel errors of the schedule
// package so that handlers and the engine share one taxonomy; the
// sentinels below cover persistence concerns the engine has no word for.
package repository

import (
	"errors"
	"strings"
)

// ErrRoomTypeExists is returned when creating a room type whose unique
// name is already taken. Handlers translate this into HTTP 409.
var ErrRoomTypeExists = errors.New("room type already exists")

// ErrRoomTypeInUse is returned when deleting a room type that is still
// referenced by bookings or events. Deleting it would leave dangling
// references, so the delete is refused with HTTP 409.
var ErrRoomTypeInUse = errors.New("room type referenced by schedule entries")

// ErrUsernameExists is returned when creating a user whose username is
// already taken.
var ErrUsernameExists = errors.New("username already exists")

// hasMySQLCode reports whether err's message carries the given MySQL
// server error code.  The driver puts the code in the message text
// ("Error 1062: Duplicate entry ..."), and the code survives wrapping
// through storeErr, so duplicates, foreign key rejections and lock
// contention are all detected through this one channel.
func hasMySQLCode(err error, code string) bool {
	return err != nil && strings.Contains(err.Error(), code)
}
