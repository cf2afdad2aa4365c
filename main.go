package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"guild-economy-system/handlers"
	"guild-economy-system/middleware"
	"guild-economy-system/services"
	"guild-economy-system/store"
	"guild-economy-system/utils"
	"guild-economy-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg := services.ConfigFromEnv()

	// Snapshot backend: Postgres when DATABASE_URL is set, local file
	// otherwise.
	var backend store.Backend
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := store.NewPostgresBackend(dsn)
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		backend = pg
		log.Println("✅ Snapshot backend: postgres")
	} else {
		path := os.Getenv("STATE_FILE")
		if path == "" {
			path = "./data/state.json"
		}
		backend = store.NewFileBackend(path)
		log.Printf("✅ Snapshot backend: file (%s)", path)
	}

	repo := store.New(backend)
	if err := repo.Load(context.Background()); err != nil {
		log.Fatal("failed to load state snapshot:", err)
	}

	mirror, err := utils.NewR2MirrorFromEnv()
	if err != nil {
		log.Fatal("failed to initialize R2 mirror:", err)
	}
	if mirror != nil {
		repo.SetMirror(mirror)
		log.Println("✅ R2 snapshot mirror enabled")
	}

	// Outbound gateway client is optional; intents become log-only without it.
	var granter services.RoleGranter
	var notifier services.Notifier
	if gwURL := os.Getenv("GATEWAY_SERVICE_URL"); gwURL != "" {
		gw := workers.NewGatewayClient(gwURL, os.Getenv("GATEWAY_SERVICE_TOKEN"))
		granter = gw
		notifier = gw
		log.Println("✅ Gateway intent client configured")
	} else {
		log.Println("⚠️  GATEWAY_SERVICE_URL not set, role grants and announcements are log-only")
	}

	leveling := services.NewLevelingService(repo, cfg)
	economy := services.NewEconomyService(repo, cfg)
	leaderboard := services.NewLeaderboardService(repo, cfg, notifier)
	moderation := services.NewModerationService(repo)
	shop := services.NewShopService(repo, granter)
	reactions := services.NewReactionRoleService(repo, granter)
	watermarks := services.NewWatermarkService(repo, cfg)
	feeds := services.NewFeedService(repo, watermarks, notifier, cfg)
	links := services.NewShortLinkService(repo)

	app := fiber.New(fiber.Config{
		AppName: "guild-economy-system",
	})

	// 🔐 Only gateway requests allowed, no exceptions (health excepted below).
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"dirty":  repo.Dirty(),
		})
	})
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	parts := strings.Split(allowedOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(parts, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Community-ID, X-Member-ID, X-Service-Token",
		MaxAge:       86400,
	}))

	handlers.SetupEventRoutes(app, leveling, reactions)
	handlers.SetupLevelingRoutes(app, leaderboard)
	handlers.SetupEconomyRoutes(app, economy)
	handlers.SetupModerationRoutes(app, moderation)
	handlers.SetupShopRoutes(app, shop)
	handlers.SetupReactionRoleRoutes(app, reactions)
	handlers.SetupLinkRoutes(app, links)
	handlers.SetupFeedRoutes(app, feeds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := services.StartScheduler(ctx, repo, leaderboard, feeds, cfg)
	if err != nil {
		log.Fatal("failed to start scheduler:", err)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":5300"
	}
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("✅ Server running on %s", addr)

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := sched.Shutdown(); err != nil {
		log.Printf("⚠️  Scheduler shutdown: %v", err)
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("⚠️  Server shutdown: %v", err)
	}

	// Final forced flush so nothing earned since the last autosave is lost.
	flushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := repo.Flush(flushCtx); err != nil {
		log.Printf("❌ Final snapshot flush failed: %v", err)
	} else {
		log.Println("✅ Final snapshot flushed")
	}
}
