// Package seed provisions the initial records the service needs on first
// boot: the admin account and, optionally, a starter set of room types.
// All operations are idempotent so the server can run them on every start.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/schedule"
)

// defaultAdminUser and defaultAdminPass match the account the original
// deployment provisioned at startup.  Operators should change the
// password after first login.
const (
	defaultAdminUser = "admin"
	defaultAdminPass = "admin@123"
)

// EnsureAdmin creates the admin account when it does not exist yet.
// Concurrent server instances may race here; the unique index on
// users.username makes the loser a no-op.
func EnsureAdmin(ctx context.Context, users *repository.UserRepo, cfg config.Config) error {
	_, err := users.GetByUsername(ctx, defaultAdminUser)
	if err == nil {
		return nil // already provisioned
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	id := uuid.NewString()
	if err := users.Create(ctx, id, defaultAdminUser, defaultAdminPass, cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil
		}
		return err
	}
	log.Printf("seed: created admin user (id=%s)", id)
	return nil
}

// EnsureRoomTypes inserts any of the given room types that are missing,
// matching by name.  Existing rows are left untouched.
func EnsureRoomTypes(ctx context.Context, rooms *repository.RoomTypeRepo, defaults []model.RoomType) error {
	for _, rt := range defaults {
		_, err := rooms.GetByName(ctx, rt.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, schedule.ErrRoomTypeNotFound) {
			return err
		}
		rt.ID = uuid.NewString()
		rt.CreatedAt = time.Now().UTC()
		if err := rooms.Create(ctx, rt); err != nil {
			if errors.Is(err, repository.ErrRoomTypeExists) {
				continue
			}
			return err
		}
		log.Printf("seed: created room type %q (id=%s)", rt.Name, rt.ID)
	}
	return nil
}
