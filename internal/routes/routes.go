package routes

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lucky-wheel/lucky_wheel/internal/config"
	"github.com/lucky-wheel/lucky_wheel/internal/game"
	"github.com/lucky-wheel/lucky_wheel/internal/leaderboard"
	"github.com/lucky-wheel/lucky_wheel/internal/middleware"
	"github.com/lucky-wheel/lucky_wheel/internal/notification"
	"github.com/lucky-wheel/lucky_wheel/internal/payout"
	"github.com/lucky-wheel/lucky_wheel/internal/player"
	"github.com/lucky-wheel/lucky_wheel/internal/prize"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger

	// Rng overrides the prize engine's randomness source in tests.
	Rng *rand.Rand
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories fall back to in-memory stores without a database.
	var playerRepo player.Repository
	var payoutJournal payout.Journal
	if d.DB != nil {
		playerRepo = player.NewPostgresRepository(d.DB)
		payoutJournal = payout.NewPostgresJournal(d.DB)
	} else {
		playerRepo = player.NewMemoryRepository()
		payoutJournal = payout.NewInMemory()
	}

	engine := prize.NewEngine(prize.DefaultCatalog, d.Rng)
	notifier := notification.NewLoggerNotifier(d.Logger)

	playerSvc := player.NewService(playerRepo, engine.Catalog())
	gameSvc := game.NewService(playerRepo, engine, payoutJournal, notifier, d.Logger, game.Options{
		SpinDuration: d.Cfg.SpinDuration,
		SessionTTL:   d.Cfg.SessionTTL,
		StoreTimeout: d.Cfg.StoreTimeout,
	})
	leaderboardSvc := leaderboard.NewService(playerRepo, d.Cache, d.Cfg.SnapshotTTL, d.Logger)

	playerHandler := player.NewHandler(playerSvc)
	gameHandler := game.NewHandler(gameSvc)
	leaderboardHandler := leaderboard.NewHandler(leaderboardSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.RegistrationRateLimit(d.Cache, 10)
	RegisterPlayerRoutes(api, playerHandler, rateLimiter)
	RegisterSessionRoutes(api, gameHandler)
	RegisterLeaderboardRoutes(api, leaderboardHandler)

	return nil
}
