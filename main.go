package main

import (
	"context"
	"os"
	"strings"
	"time"

	"foodcart/api"
	"foodcart/bot"
	"foodcart/config"
	"foodcart/db"
	"foodcart/geo"
	"foodcart/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := db.Init(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer db.Close()

	// Check for migrate subcommand. Migrations only need the database, so
	// this runs before any geocoder configuration is demanded.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := applyMigrations(context.Background(), true); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		return
	}

	if cfg.Geocoder.APIKey == "" {
		log.Fatal().Msg("GEOCODER_API_KEY not set")
	}

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}

	geocoder := geo.NewClient(
		cfg.Geocoder.APIKey,
		cfg.Geocoder.BaseURL,
		time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
	)
	matcher := services.NewMatcher(
		geo.NewCache(),
		geocoder,
		time.Duration(cfg.Cache.RestaurantTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.OrderTTLSeconds)*time.Second,
	)

	var notifier *bot.Notifier
	if cfg.Telegram.NotifyToken != "" {
		notifier, err = bot.NewNotifier(cfg.Telegram)
		if err != nil {
			log.Fatal().Err(err).Msg("notify bot")
		}
		log.Info().Msg("order notifications enabled")
	}

	server := api.NewServer(matcher, notifier)
	log.Info().Str("addr", cfg.HTTP.Addr).Msg("starting server")
	if err := server.Run(cfg.HTTP.Addr); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
