// Command orderscheduler periodically creates demo orders through the HTTP
// API to simulate live traffic. Orders are only placed during business hours
// (Mon-Fri 09:00-21:00 by default); outside the window it sleeps until the
// next opening.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/farmable/api/internal/demo"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("API_URL", "http://localhost:8081"), "Base URL of the Farmable API")
	interval := flag.Duration("interval", 2*time.Minute, "Delay between orders inside business hours")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := demo.NewGenerator(demo.NewClient(*apiURL))
	window := demo.DefaultWindow()

	logger.Info().Str("api", *apiURL).Dur("interval", *interval).Msg("order scheduler started")

	for {
		now := time.Now()
		if !window.Contains(now) {
			next := window.NextStart(now)
			logger.Info().Time("next", next).Msg("outside business hours, waiting for next window")
			if !sleep(ctx, next.Sub(now)) {
				break
			}
			continue
		}

		id, err := gen.CreateRandomOrder(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("order creation failed")
		} else {
			logger.Info().Int64("order_id", id).Msg("order created")
		}

		if !sleep(ctx, *interval) {
			break
		}
	}

	logger.Info().Msg("order scheduler stopped")
}

// sleep waits for d or until ctx is cancelled; it reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
