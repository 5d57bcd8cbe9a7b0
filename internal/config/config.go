// Package config provides configuration management for the injury impact model.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Analysis   AnalysisConfig   `mapstructure:"analysis" validate:"required"`
	Betting    BettingConfig    `mapstructure:"betting" validate:"required"`
	DataSource DataSourceConfig `mapstructure:"data_source" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig holds the statistical parameters of the inference pipeline.
type AnalysisConfig struct {
	// Alpha is the significance level for the two-sample t-test.
	Alpha float64 `mapstructure:"alpha" validate:"required,gt=0,lt=1"`
	// MinSampleSize is the per-cohort floor below which a formally
	// significant p-value is still not trusted on its own.
	MinSampleSize int `mapstructure:"min_sample_size" validate:"required,gte=2"`
	// MinObservations is the floor below which the t-test cannot run at all.
	MinObservations int `mapstructure:"min_observations" validate:"required,gte=2"`
	// MinPredictiveStdDev floors the predictive standard deviation so the
	// performance distribution never degenerates to a point mass.
	MinPredictiveStdDev float64 `mapstructure:"min_predictive_std_dev" validate:"required,gt=0"`
}

// BettingConfig holds pricing and staking parameters.
type BettingConfig struct {
	// PayoutOdds is profit per unit staked on a win, excluding the
	// returned stake. 0.909 corresponds to standard -110 pricing.
	PayoutOdds float64 `mapstructure:"payout_odds" validate:"required,gt=0"`
	// KellyMultiplier scales the full Kelly fraction down for risk control.
	KellyMultiplier float64 `mapstructure:"kelly_multiplier" validate:"required,gt=0,lte=1"`
	// MaxStakeFraction caps the recommended stake as a share of bankroll.
	MaxStakeFraction float64 `mapstructure:"max_stake_fraction" validate:"required,gt=0,lte=1"`
	// MinEdge is the minimum expected value per unit staked for an
	// opportunity to be reported.
	MinEdge float64 `mapstructure:"min_edge" validate:"gte=0,lt=1"`
}

// DataSourceConfig represents the NBA stats provider configuration
type DataSourceConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	APIKey             string  `mapstructure:"api_key"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	CacheTTLMinutes    int     `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
	SnapshotDir        string  `mapstructure:"snapshot_dir" validate:"required"`
}

// DatabaseConfig represents the bet-tracker database configuration.
// Optional: the analysis pipeline runs without a database, only bet
// tracking needs one.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasDatabase reports whether a tracker database is configured.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != "" && c.Database.Name != ""
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RequestTimeout returns the data source request timeout as a duration
func (c *DataSourceConfig) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the roster and player-index cache TTL as a duration
func (c *DataSourceConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
