package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/console/internal/config"
	"github.com/ehr/console/internal/console"
	"github.com/ehr/console/internal/ehrapi"
	"github.com/ehr/console/internal/i18n"
	"github.com/ehr/console/internal/platform/middleware"
	"github.com/ehr/console/internal/session"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "console-server",
		Short: "EHR Mapping Console",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var sessionFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mapping console server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(sessionFile)
		},
	}
	cmd.Flags().StringVar(&sessionFile, "session-file", "", "path for persisted sessions (empty disables persistence)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the console version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func runServer(sessionFile string) error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Remote EHR API client
	api := ehrapi.NewClient(cfg.EHRAPIBaseURL, time.Duration(cfg.EHRAPITimeoutSecs)*time.Second, logger)

	// Sessions are read once at startup; persistence is best effort.
	sessions := session.NewManager(sessionFile)

	catalog := i18n.New(cfg.DefaultLocale)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := console.NewRenderer(catalog)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}
	e.Renderer = renderer

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))

	handler := console.NewHandler(cfg, api, sessions, catalog, logger)
	handler.RegisterRoutes(e)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("ehr_api", cfg.EHRAPIBaseURL).Msg("starting console server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
