package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sarkop/opname/internal/api"
	"github.com/sarkop/opname/internal/cache"
	"github.com/sarkop/opname/internal/config"
	"github.com/sarkop/opname/internal/service"
	"github.com/sarkop/opname/internal/sheets"
	"github.com/sarkop/opname/internal/summary"
	"github.com/sarkop/opname/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "opname-server",
		Usage: "Stock opname reconciliation and restock-decision service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Usage:   "Port to listen on (overrides SERVER_PORT)",
						EnvVars: []string{"SERVER_PORT"},
					},
				},
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("server failed")
	}
}

func serve(c *cli.Context) error {
	_ = godotenv.Load()

	cfg := config.Load()
	if port := c.String("port"); port != "" {
		cfg.Server.Port = port
	}

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	sheetService, err := sheets.NewService(c.Context, cfg.Sheets)
	if err != nil {
		return fmt.Errorf("initialize sheet provider: %w", err)
	}

	tableCache, err := cache.NewTableCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	var composer summary.Composer = summary.NewTemplateComposer()
	if cfg.Report.SummaryAPIKey != "" {
		composer = summary.NewGeminiComposer(
			cfg.Report.SummaryEndpoint,
			cfg.Report.SummaryModel,
			cfg.Report.SummaryAPIKey,
		)
	}

	stockService := service.NewStockService(sheetService, tableCache, cfg, composer)

	router := api.NewRouter(stockService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Log.Info().Msg("server exiting")

	return nil
}
