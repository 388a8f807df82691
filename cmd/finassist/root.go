package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"finassist/internal/app"
	"finassist/internal/config"
	"finassist/internal/logging"
)

const defaultEnvFile = ".env"

var (
	verbose bool
	envFile string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "finassist",
	Short: "Personal finance assistant",
	Long: `FinAssist answers questions about budgets, investments and saving habits.
Advice questions are answered from a local finance guide through semantic search.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "file with environment settings")
}

// setup loads the environment file and configuration and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("env-file") {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger = logging.New(cmd.ErrOrStderr(), level)
	return nil
}

// openApp builds and initialises the assistant for a command.
func openApp(cmd *cobra.Command) (*app.App, error) {
	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Init(cmd.Context()); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}
