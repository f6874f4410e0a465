// Command ordergen creates one randomized demo order through the HTTP API.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/farmable/api/internal/demo"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("API_URL", "http://localhost:8081"), "Base URL of the Farmable API")
	unique := flag.Bool("unique", false, "Create a fresh customer instead of reusing one")
	flag.Parse()

	gen := demo.NewGenerator(demo.NewClient(*apiURL))
	gen.Unique = *unique

	id, err := gen.CreateRandomOrder(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("order creation failed")
	}
	logger.Info().Int64("order_id", id).Msg("order created successfully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
