package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"academy-server/config"
	"academy-server/handlers"
	"academy-server/logger"
	"academy-server/middleware"
	"academy-server/services"
	"academy-server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	if cfg.SeedData {
		if err := storage.Seed(store); err != nil {
			log.Fatal().Err(err).Msg("seeding starter curriculum")
		}
		log.Info().Msg("starter curriculum seeded")
	}

	auth := services.NewAuthService(store, cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		AppName: "academy-server",
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.UserContext(auth))

	adminGate := middleware.Passthrough()
	if cfg.RequireAdmin {
		adminGate = middleware.RequireAdmin()
	}

	handlers.SetupAuthRoutes(app, handlers.NewAuthHandler(auth, store, log))
	handlers.SetupContentRoutes(app, handlers.NewContentHandler(store, log), adminGate)
	handlers.SetupProgressRoutes(app, handlers.NewProgressHandler(store, log), adminGate)
	handlers.SetupJournalRoutes(app, handlers.NewJournalHandler(store, log))

	scheduler := services.NewPublishScheduler(store, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("starting publish scheduler")
	}
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Bool("requireAdmin", cfg.RequireAdmin).Msg("academy server running")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	_ = app.Shutdown()
}

// openStore picks the database-backed store when DATABASE_URL is set and
// the in-memory store otherwise.
func openStore(cfg config.Config) (storage.Store, error) {
	if cfg.DatabaseURL == "" {
		mem := storage.NewMemoryStore()
		mem.CascadeDelete = cfg.CascadeDelete
		return mem, nil
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	gs := storage.NewGormStore(db)
	gs.CascadeDelete = cfg.CascadeDelete
	if err := gs.Migrate(); err != nil {
		return nil, err
	}
	return gs, nil
}
