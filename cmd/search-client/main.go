package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mikeboe/search-client/pkg/config"
	"github.com/mikeboe/search-client/pkg/render"
	"github.com/mikeboe/search-client/pkg/search"
	"github.com/mikeboe/search-client/pkg/session"
	"github.com/mikeboe/search-client/pkg/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	// It's okay if .env doesn't exist, as long as env vars are set
	_ = godotenv.Load()

	v := config.New()
	rootCmd := newRootCommand(v)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "search-client",
		Short: "A terminal client for the research search agent",
		Long: `search-client submits questions to a research search agent and shows the
answer together with the results of every source the agent consulted.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("agent-url", "", "Base URL of the search agent")
	flags.String("transport", "", "Transport to the agent: http or ws")
	flags.Int("max-iterations", 0, "Maximum search iterations the agent may run")
	flags.Duration("timeout", 0, "Request timeout")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("config", "", "Config file (default ./search-client.yaml)")

	for key, flag := range map[string]string{
		"agent_url":      "agent-url",
		"transport":      "transport",
		"max_iterations": "max-iterations",
		"timeout":        "timeout",
		"log_level":      "log-level",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			v.SetConfigFile(path)
		}
	}

	rootCmd.AddCommand(newSearchCommand(v))
	rootCmd.AddCommand(newHealthCommand(v))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), v)
		},
	})
	return rootCmd
}

func newSearchCommand(v *viper.Viper) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a single search and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			setupLogging(cfg, os.Stderr)

			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				// Interactive Mode
				fmt.Fprint(cmd.OutOrStdout(), "Enter your question: ")
				input, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				query = input
			}

			shell, err := newShell(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := shell.Submit(ctx, query)
			if errors.Is(err, search.ErrEmptyQuery) {
				return errors.New("query cannot be empty")
			}
			if err != nil {
				return err
			}

			if expand {
				for _, p := range shell.View().Panels {
					shell.ToggleSource(p.SubQuery)
				}
			}

			md, err := render.NewMarkdownFormatter(false)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.New(md).Results(shell.View(), -1))

			if !res.Response.Success {
				return errors.New("search failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&expand, "expand", "e", false, "Show every source's results")
	return cmd
}

func newHealthCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the agent is up and ready",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			setupLogging(cfg, os.Stderr)

			agent := search.NewHTTPAgent(cfg.AgentURL, cfg.Timeout)
			h, err := agent.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "status: %s\nagent ready: %t\n", h.Status, h.AgentReady)
			if !h.AgentReady {
				return errors.New("agent is not ready")
			}
			return nil
		},
	}
}

func runTUI(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// keep log output off the terminal while the interface owns it
	logFile, err := tea.LogToFile(cfg.LogFile, "search-client")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	setupLogging(cfg, logFile)

	shell, err := newShell(cfg)
	if err != nil {
		return err
	}

	md, err := render.NewMarkdownFormatter(false)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(tui.New(ctx, shell, render.New(md)), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func setupLogging(cfg *config.Config, w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
}

func newAgent(cfg *config.Config) (search.Agent, error) {
	switch cfg.Transport {
	case config.TransportWebSocket:
		return search.NewWSAgent(cfg.AgentURL, cfg.Timeout)
	default:
		return search.NewHTTPAgent(cfg.AgentURL, cfg.Timeout), nil
	}
}

func newShell(cfg *config.Config) (*session.Shell, error) {
	agent, err := newAgent(cfg)
	if err != nil {
		return nil, err
	}
	c := session.NewController(agent, cfg.MaxIterations)
	c.FallbackMessage = cfg.FallbackMessage
	return session.NewShell(c), nil
}
