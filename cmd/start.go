package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"change-detector/core/loader"
	"change-detector/core/logger"
	"change-detector/core/middleware/auth"
	"change-detector/core/middleware/rayid"
	"change-detector/feature/integrity"
	"change-detector/feature/vertex"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "change-detector/docs/swagger"
)

// @title Change Detector API
// @version 1.0
// @description API for comparing the survey vertex export with the system-of-record.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the change detector server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration, Logger and Storage
		a, err := newApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer a.close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		// 2. Connect to Database (Optional)
		if err := a.connect(); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			logg = logg.With(zap.String("database", a.cfg.Database.Name))
			a.logger = logg
			logg.Info("Connected to system-of-record database")
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			ReadTimeout:           time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:          time.Duration(a.cfg.Server.WriteTimeoutSeconds) * time.Second,
		})

		// 4. Initialize Feature Loader
		extractor, notifier, err := a.vertexDeps()
		if err != nil {
			logg.Fatal("Failed to create vertex dependencies", zap.Error(err))
		}

		mgr := loader.NewManager()
		mgr.Register(integrity.NewFeature(a.store, a.cfg.Storage.Bucket, logg, a.db, a.cfg.Vertex.LineTable, a.cfg.Vertex.PointTable))
		mgr.Register(vertex.NewFeature(a.store, a.cfg.Storage.Bucket, logg, a.db, a.cfg.Vertex, extractor, notifier))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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
		if !a.cfg.Server.HasAuth() {
			logg.Warn("No API key configured, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		for _, f := range mgr.Features() {
			logg.Info("Feature", zap.String("name", f.Name()), zap.Bool("enabled", f.IsEnabled()))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
