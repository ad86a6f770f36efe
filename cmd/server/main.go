package main

import (
	"fmt"
	"os"

	"github.com/gattabara/site/internal/config"
	"github.com/gattabara/site/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	devLogs    bool
)

var rootCmd = &cobra.Command{
	Use:           "gattabara",
	Short:         "Gattabara Games site server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides SITE_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&devLogs, "dev", false, "human-readable development logs")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime 读取配置并构造日志
func loadRuntime() (config.AppConfig, *zap.Logger, error) {
	if configPath != "" {
		if err := os.Setenv("SITE_CONFIG", configPath); err != nil {
			return config.AppConfig{}, nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, devLogs)
	if err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
