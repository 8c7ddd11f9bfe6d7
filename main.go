package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"undangan.link/configs"
	"undangan.link/configs/configsdatabase"
	"undangan.link/configs/configslog"
	"undangan.link/database"
	"undangan.link/pkg/blobstore"
	"undangan.link/pkg/messaging"
	"undangan.link/routes"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	rootCmd := &cobra.Command{
		Use:   "undangan",
		Short: "undangan.link wedding invitation server",
	}
	rootCmd.AddCommand(serveCommand(), database.NewCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate and seed before serving")
	return cmd
}

func buildBlobStore(ctx context.Context, cfg *configs.AppConfig) blobstore.Store {
	store, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		if errors.Is(err, blobstore.ErrNotConfigured) {
			configslog.SLog.Warn("S3 storage not configured, uploads disabled")
		} else {
			configslog.Log.Error("S3 storage init failed, uploads disabled", zap.Error(err))
		}
		return nil
	}
	return store
}

func buildSender(cfg *configs.AppConfig) messaging.Sender {
	sender, err := messaging.NewTwilioSender(messaging.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioFrom,
		Channel:    cfg.TwilioChannel,
	})
	if err != nil {
		configslog.SLog.Warn("Twilio not configured, direct sending disabled")
		return nil
	}
	return sender
}

func serve(ctx context.Context, migrate bool) error {
	configs.LoadEnv()
	cfg := configs.GetConfig()
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	if migrate {
		if err := database.Initialize(configsdatabase.GetDB(), true, true); err != nil {
			return err
		}
	}

	guests := services.NewGuestService()
	svc := routes.Services{
		Auth:        services.NewAuthService(),
		Users:       services.NewUserService(),
		Themes:      services.NewThemeService(),
		Invitations: services.NewInvitationService(),
		Guests:      guests,
		Uploads:     services.NewUploadService(buildBlobStore(ctx, cfg)),
		Dispatch:    services.NewDispatchService(guests, buildSender(cfg), cfg.BaseURL),
		Stats:       services.NewStatsService(),
	}

	engine := html.New("./views", ".html")
	engine.Reload(!cfg.IsProduction())
	app := fiber.New(fiber.Config{
		Views:        engine,
		AppName:      "undangan.link",
		BodyLimit:    32 * 1024 * 1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	routes.SetupRoutes(app, cfg, svc)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			configslog.Log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Server listening on :%s", cfg.Port)
	return app.Listen(":" + cfg.Port)
}
