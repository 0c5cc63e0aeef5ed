package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/carebot/internal/config"
	"github.com/aretw0/carebot/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "carebot",
	Short:         "Carebot is an intent detection chatbot backend",
	Long:          `Carebot classifies user messages, answers from a fixed reply catalog and keeps a conversation flow per user.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("store", "", "Context store: redis, memory or file")
}

// loadConfig resolves configuration and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}

	if store, _ := cmd.Flags().GetString("store"); store != "" {
		os.Setenv("STORE", store)
	}
	cfg, err := config.Load(path, envFiles...)
	if err != nil {
		return nil, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(level, cfg.LogFormat)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
