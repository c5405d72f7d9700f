// Package cmd holds the command line front end.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"summagraph/app"
	"summagraph/config"
	"summagraph/logging"
)

var globalOpts struct {
	ConfigPath string
	LogLevel   string
}

var rootCmd = &cobra.Command{
	Use:           "summagraph",
	Short:         "Turn a block of text into an infographic image",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigPath, "config", config.DefaultPath, "path to config.json")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogLevel, "log-level", "", "override log_level from config")

	rootCmd.AddCommand(serveCmd, generateCmd, optionsCmd, bridgeCmd)
}

// Execute is called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errBridgeFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(globalOpts.ConfigPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if globalOpts.LogLevel != "" {
		cfg.LogLevel = globalOpts.LogLevel
	}
	return cfg, logging.New(cfg.AppEnv, cfg.LogLevel), nil
}

func loadApp() (*app.App, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger)
}
