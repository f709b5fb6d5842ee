package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holotable/core/cache"
	"holotable/core/client"
	"holotable/core/config"
	"holotable/core/loader"
	"holotable/core/logger"
	"holotable/core/middleware/auth"
	"holotable/core/middleware/rayid"
	"holotable/core/server"
	"holotable/core/store"

	"holotable/feature/events"
	"holotable/feature/gamedata"
	"holotable/feature/guild"
	"holotable/feature/player"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "holotable/docs/swagger"
)

// @title Holotable API
// @version 1.0
// @description Versioned game-data mirror with player, guild and event passthrough.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the mirror server",
	Long:  `Starts the HTTP server, synchronizes game data and polls the upstream for new versions.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Store + Upstream Client
		st, err := store.New(cfg.Store, logg)
		if err != nil {
			logg.Fatal("Failed to create document store", zap.Error(err))
		}
		upstream := client.NewClient(cfg.Client)

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			ErrorHandler:          server.ErrorHandler(logg),
		})

		// 5. Register Features
		ttl := time.Duration(cfg.Data.TtlMs) * time.Millisecond
		playerCache := cache.New(ttl)
		guildCache := cache.New(ttl)
		eventCache := cache.New(ttl)

		gd := gamedata.NewFeature(upstream, st, cfg.Data, logg)

		mgr := loader.NewManager(logg)
		mgr.Register(gd)
		mgr.Register(player.NewFeature(upstream, playerCache, cfg.Data.PlayerConcurrency, logg))
		mgr.Register(guild.NewFeature(upstream, guildCache, playerCache, cfg.Data.GuildConcurrency, logg))
		mgr.Register(events.NewFeature(upstream, eventCache, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Synchronize and start the update poller
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := gd.Service().Init(ctx); err != nil {
			logg.Fatal("Initial game data synchronization failed", zap.Error(err))
		}

		interval := time.Duration(cfg.Data.UpdateIntervalMins) * time.Minute
		poller := gamedata.NewPoller(upstream, interval, func(meta *client.Metadata) {
			if _, err := gd.Service().UpdateCheck(ctx,
				meta.LatestGamedataVersion, meta.LatestLocalizationBundleVersion, false); err != nil {
				logg.Error("Scheduled update failed", zap.Error(err))
			}
		}, logg)
		poller.Start(ctx)

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		poller.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
