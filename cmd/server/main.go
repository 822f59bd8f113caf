package main // Entry point package

import (
    "context"
    "os"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "github.com/pochitasw/vetclinic/internal/config"
    "github.com/pochitasw/vetclinic/internal/database"
    "github.com/pochitasw/vetclinic/internal/handler"
    "github.com/pochitasw/vetclinic/internal/middleware"
    "github.com/pochitasw/vetclinic/internal/queue"
    "github.com/pochitasw/vetclinic/internal/repository"
    "github.com/pochitasw/vetclinic/internal/router"
    "github.com/pochitasw/vetclinic/internal/schedule"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
    if cfg.Env == "dev" {
        log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
    }

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatal().Err(err).Msg("database connect failed")
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.EnsureSchema(ctx, db); err != nil {
        cancel()
        log.Fatal().Err(err).Msg("schema check failed")
    }
    cancel()

    // Redis backs the availability cache and the login rate limiter; the
    // server runs without it when unavailable.
    rdb := config.NewRedisClient()

    // Repositories.
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    clients := repository.NewClientRepo(db)
    pets := repository.NewPetRepo(db)
    vets := repository.NewVetRepo(db)
    appts := repository.NewAppointmentRepo(db)
    waitlist := repository.NewWaitlistRepo(db)
    visits := repository.NewVisitRepo(db)
    products := repository.NewProductRepo(db)
    sales := repository.NewSaleRepo(db)

    // Scheduling engine over the appointment store with the Chilean
    // calendar policy.
    engine := schedule.NewEngine(appts, nil)

    // Handlers.
    authH := handler.NewAuthHandler(cfg, users, tokens, clients, pets)
    clientH := handler.NewClientHandler(cfg, clients, users, pets)
    petH := handler.NewPetHandler(pets, clients, appts, visits)
    apptH := handler.NewAppointmentHandler(appts, pets, clients, vets, engine)
    availH := handler.NewAvailabilityHandler(engine, vets)
    waitH := handler.NewWaitlistHandler(waitlist, clients, pets, vets)
    visitH := handler.NewVisitHandler(visits, appts, vets)
    productH := handler.NewProductHandler(products)
    saleH := handler.NewSaleHandler(sales, products, clients)
    staffH := handler.NewStaffHandler(cfg, users, vets)

    e := echo.New()
    e.HideBanner = true

    loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    gridCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret, loginLimiter)
    router.RegisterSchedule(e, apptH, availH, visitH, cfg.JWTSecret, gridCache)
    router.RegisterReception(e, clientH, petH, waitH, cfg.JWTSecret)
    router.RegisterPOS(e, saleH, productH, staffH, cfg.JWTSecret)

    // The consumer writes the appointment audit log; it reconnects on
    // broker failure and never stops the server.
    go func() {
        if err := queue.StartAppointmentConsumer(); err != nil {
            log.Error().Err(err).Msg("appointment consumer stopped")
        }
    }()

    addr := ":" + cfg.Port
    log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
    if err := e.Start(addr); err != nil {
        log.Fatal().Err(err).Msg("server stopped")
    }
}
