// Package main provides the injury-model command line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/datasource"
	"github.com/evanchechak/basketball-injury-model/internal/logger"
	"github.com/evanchechak/basketball-injury-model/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "injury-model",
	Short: "NBA injury impact betting model",
	Long: `Analyzes how a star player's absence shifts teammate production,
compares the model's predictions against posted prop lines, and tracks
recommended bets.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			region := os.Getenv("AWS_REGION")
			secretName := os.Getenv("AWS_SECRET_NAME")
			if region == "" || secretName == "" {
				return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			}
			if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}

		appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("injury-model %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// newCollector wires the stats provider client and the snapshot store.
func newCollector() (*service.Collector, error) {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.DataSource.RequestTimeout()
	httpCfg.MaxRetries = cfg.DataSource.MaxRetries
	httpCfg.RateLimit = cfg.DataSource.RateLimitPerSecond

	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, datasource.StatsHeaders(), appLog)
	client := datasource.NewNBAStatsClient(httpClient, cfg.DataSource.BaseURL, cfg.DataSource.CacheTTL(), true, appLog)

	store, err := datasource.NewCSVStore(cfg.DataSource.SnapshotDir, appLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	return service.NewCollector(client, store, appLog), nil
}
