package main // Entry point package

import (
	"context" // contexts for startup tasks
	"log"     // Logging library
	"os"      // feature toggles read straight from the environment
	"time"    // timeouts for startup tasks

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/room-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/room-reservation/internal/database"   // MySQL connection pool
	"github.com/iliyamo/room-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/room-reservation/internal/model"      // shared data structures
	"github.com/iliyamo/room-reservation/internal/queue"      // RabbitMQ consumer
	"github.com/iliyamo/room-reservation/internal/repository" // persistence layer
	"github.com/iliyamo/room-reservation/internal/router"     // Internal router setup
	"github.com/iliyamo/room-reservation/internal/schedule"   // conflict checking engine
	"github.com/iliyamo/room-reservation/internal/seed"       // first-boot provisioning
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables response caching and rate
	// limiting without affecting correctness.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories and the conflict checking engine.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomTypeRepo(db)
	store := repository.NewScheduleStore(db)
	checker := schedule.NewChecker(store, nil, nil)

	// First-boot provisioning: the admin account must exist before anyone
	// can log in.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := seed.EnsureAdmin(ctx, users, cfg); err != nil {
			cancel()
			log.Fatalf("seed: %v", err)
		}
		// A starter catalogue is useful for demos and local development.
		if os.Getenv("SEED_ROOM_TYPES") == "true" {
			defaults := []model.RoomType{
				{Name: "Standard Room", Description: "Single room with a desk", Price: 25},
				{Name: "Conference Room", Description: "Seats up to twelve people", Price: 80},
			}
			if err := seed.EnsureRoomTypes(ctx, rooms, defaults); err != nil {
				cancel()
				log.Fatalf("seed: %v", err)
			}
		}
		cancel()
	}

	// Background consumer that appends reserved slots to logs/reservations.log.
	go func() {
		if err := queue.StartSlotConsumer(); err != nil {
			log.Printf("slot consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterSchedule(e,
		handler.NewBookingHandler(checker, store, rooms),
		handler.NewEventHandler(checker, store, rooms),
		handler.NewRoomTypeHandler(rooms),
		handler.NewCalendarHandler(store, rooms),
		cfg.JWTSecret,
		rdb,
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
