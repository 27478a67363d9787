package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/hws-labs/wetterbot/internal/api/http"
	"github.com/hws-labs/wetterbot/internal/bot"
	"github.com/hws-labs/wetterbot/internal/config"
	"github.com/hws-labs/wetterbot/internal/geocode"
	"github.com/hws-labs/wetterbot/internal/logger"
	"github.com/hws-labs/wetterbot/internal/scheduler"
	"github.com/hws-labs/wetterbot/internal/store"
	"github.com/hws-labs/wetterbot/internal/telegram"
	"github.com/hws-labs/wetterbot/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Shared HTTP client for outbound collaborator calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Location store: Redis in production-like setups, in-memory
	// fallback for local development without Redis.
	var (
		locations bot.LocationStore
		probe     scheduler.Pinger
	)
	if cfg.RedisAddr != "" {
		rs := store.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}))
		locations, probe = rs, rs
	} else {
		zlog.Warnw("REDIS_ADDR not set; saved locations will not survive restarts")
		ms := store.NewMemoryStore()
		locations, probe = ms, ms
	}

	// Resolver: Google when a geocoder key is configured, otherwise the
	// keyless Open-Meteo geocoding API.
	var resolver bot.LocationResolver
	if cfg.GeocoderAPIKey != "" {
		resolver = geocode.NewGoogleResolver(cfg.GeocoderAPIKey)
	} else {
		resolver = geocode.NewOpenMeteoResolver(httpClient)
	}

	fetcher := weather.NewOpenMeteoClient(httpClient)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		zlog.Fatalw("failed to create telegram bot", "error", err)
	}
	zlog.Infow("authorized on telegram", "username", api.Self.UserName)

	router := bot.NewRouter(
		bot.Options{
			AuthorizedUsers: cfg.AuthorizedUsers,
			BotUsername:     cfg.BotUsername,
			WeatherCommand:  cfg.WeatherCommand,
			CallTimeout:     cfg.CallTimeout,
		},
		bot.Deps{
			Store:    locations,
			Resolver: resolver,
			Fetcher:  fetcher,
			Sender:   telegram.NewSender(api),
			Log:      zlog,
		},
	)

	// Periodic store health probe.
	sched := scheduler.New(probe, cfg.ProbeInterval, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp()

	// Transport mode: webhook behind the HTTP server in production,
	// long polling in development.
	var updates <-chan tgbotapi.Update
	if cfg.Production() {
		if err := telegram.ConfigureWebhook(api, cfg.AppURL, cfg.TelegramToken); err != nil {
			zlog.Fatalw("failed to configure webhook", "error", err)
		}
		ch := make(chan tgbotapi.Update, 64)
		httpapi.RegisterWebhook(app, cfg.TelegramToken, ch, zlog)
		updates = ch
		zlog.Infow("webhook configured", "url", cfg.AppURL)
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updates = api.GetUpdatesChan(u)
		zlog.Infow("long polling configured")
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Errorw("http server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go telegram.Consume(ctx, updates, router, zlog)

	<-ctx.Done()
	zlog.Infow("shutting down")

	api.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Errorw("error during shutdown", "error", err)
	}
}
