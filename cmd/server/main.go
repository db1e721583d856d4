package main // Entry point package

import (
	"log" // Logging

	"github.com/joho/godotenv" // Load .env (dev/local)
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/config"
	"github.com/iliyamo/cinema-booking/internal/handler"
	"github.com/iliyamo/cinema-booking/internal/middleware"
	"github.com/iliyamo/cinema-booking/internal/queue"
	"github.com/iliyamo/cinema-booking/internal/router"
	"github.com/iliyamo/cinema-booking/internal/seed"
	"github.com/iliyamo/cinema-booking/internal/store"
)

func main() {
	// Load .env if present (ignore error in dev/local)
	if err := godotenv.Load(); err != nil {
		log.Println("info: .env not found; using defaults/env")
	}

	cfg := config.Load()

	st := store.Default()
	if cfg.SeedDemo {
		if err := seed.DemoData(st); err != nil {
			log.Fatalf("seeding demo data: %v", err)
		}
		log.Println("info: demo catalog seeded")
	}

	// Redis is optional; a nil client turns both middlewares into
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("info: redis unavailable; response cache and rate limiting disabled")
	}

	// The booking event consumer mirrors accepted bookings into
	// logs/booking.log. It reconnects forever in its own goroutine.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewResponseCache(config.LoadCacheConfig(), rdb))

	h := handler.NewBookingHandler(st, queue.NewPublisher())
	router.RegisterRoutes(e, h)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
