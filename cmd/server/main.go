package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv" // .env loader for local development
    "github.com/labstack/echo/v4"

    "github.com/hamzaidr/lounge-station-booking/internal/config"
    "github.com/hamzaidr/lounge-station-booking/internal/database"
    "github.com/hamzaidr/lounge-station-booking/internal/handler"
    "github.com/hamzaidr/lounge-station-booking/internal/middleware"
    "github.com/hamzaidr/lounge-station-booking/internal/queue"
    "github.com/hamzaidr/lounge-station-booking/internal/repository"
    "github.com/hamzaidr/lounge-station-booking/internal/router"
    "github.com/hamzaidr/lounge-station-booking/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("open database: %v", err)
    }
    defer db.Close()

    // Redis backs the rate limiter and the response cache; both fail
    // open when it is unreachable.
    rdb := config.NewRedisClient()

    // Repositories.
    stations := repository.NewStationRepo(db)
    profiles := repository.NewProfileRepo(db)
    sessions := repository.NewSessionRepo(db, stations, profiles)
    bookings := repository.NewBookingRepo(db)
    settings := repository.NewSettingsRepo(db, cfg.Business)
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)

    // Services.
    sessionSvc := service.NewSessionService(stations, sessions, settings, service.QueueAlertPublisher{})
    bookingSvc := service.NewBookingService(stations, bookings, sessions)

    // Handlers.
    authH := handler.NewAuthHandler(cfg, users, tokens, profiles)
    stationH := handler.NewStationHandler(stations)
    sessionH := handler.NewSessionHandler(sessionSvc)
    bookingH := handler.NewBookingHandler(bookingSvc)
    profileH := handler.NewProfileHandler(profiles)

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterLounge(e, stationH, sessionH, bookingH, profileH, cfg.JWTSecret)

    // Consume unpaid-session alerts in the background; the consumer
    // reconnects on broker failures.
    go func() {
        if err := queue.StartAlertConsumer(); err != nil {
            log.Printf("alert consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
