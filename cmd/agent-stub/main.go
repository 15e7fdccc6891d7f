package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mikeboe/search-client/pkg/agentstub"
	"github.com/mikeboe/search-client/pkg/config"
	"github.com/spf13/cobra"
)

func main() {
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "agent-stub",
		Short: "A local stand-in for the research search agent",
		Long: `agent-stub serves the search agent API (/api/search, /api/health, /ws)
backed by live arXiv and Wikipedia lookups, for developing the client without
the real agent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
			slog.SetDefault(logger)

			gin.SetMode(gin.ReleaseMode)
			svc := agentstub.NewService(agentstub.NewToolResponder(agentstub.DefaultTools(cfg.ArxivURL, cfg.WikipediaURL)...))
			r := agentstub.NewEngine(svc, logger)

			logger.Info("Server starting", "port", cfg.Port)
			return r.Run(":" + cfg.Port)
		},
	}

	rootCmd.Flags().String("port", "", "Port to listen on")
	_ = v.BindPFlag("port", rootCmd.Flags().Lookup("port"))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
