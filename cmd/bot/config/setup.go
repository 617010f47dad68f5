package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Jacobbrewer1/neutron/pkg/dataaccess"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrMissingValue is returned when a required value is not configured.
var ErrMissingValue = errors.New("missing required configuration")

// ErrInvalidValue is returned when a configured value is not allowed.
var ErrInvalidValue = errors.New("invalid configuration")

// EnvFile is the dotenv file read on startup if it exists.
const EnvFile = ".env"

// flagNames maps the command line flags to the environment variables they override.
var flagNames = map[string]string{
	"database-driver": EnvDatabaseDriver,
	"sqlite-path":     EnvSqlitePath,
	"monitoring-port": EnvMonitoringPort,
	"panels-file":     EnvPanelsFile,
}

// Load reads the configuration. Values come from, in order of precedence: command line flags, the environment,
// the dotenv file and the defaults.
func Load(l *slog.Logger, args Args) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", EnvFile, err)
		}
		l.Debug("No dotenv file found", slog.String("file", EnvFile))
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(EnvDatabaseDriver, defaultDatabaseDriver)
	v.SetDefault(EnvMongoDatabase, defaultMongoDatabase)
	v.SetDefault(EnvSqlitePath, defaultSqlitePath)
	v.SetDefault(EnvMonitoringPort, defaultMonitoringPort)
	v.SetDefault(EnvDashboardRateLimit, defaultDashboardRateLimit)
	v.SetDefault(EnvCloseDelay, defaultCloseDelay)
	v.SetDefault(EnvSelectionTTL, defaultSelectionTTL)
	v.SetDefault(EnvTicketCategoryName, defaultTicketCategoryName)

	flags := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	flags.String("database-driver", defaultDatabaseDriver, "store to use: mongo or sqlite")
	flags.String("sqlite-path", defaultSqlitePath, "path of the SQLite database file")
	flags.String("monitoring-port", defaultMonitoringPort, "port of the monitoring and dashboard server")
	flags.String("panels-file", "", "YAML file of panels to create on startup")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	for name, key := range flagNames {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}

	cfg := &Config{
		BotToken:           v.GetString(EnvBotToken),
		ApplicationId:      v.GetString(EnvApplicationId),
		DatabaseDriver:     v.GetString(EnvDatabaseDriver),
		MongoUri:           v.GetString(EnvMongoUri),
		MongoDatabase:      v.GetString(EnvMongoDatabase),
		SqlitePath:         v.GetString(EnvSqlitePath),
		MonitoringPort:     v.GetString(EnvMonitoringPort),
		DashboardToken:     v.GetString(EnvDashboardToken),
		DashboardRateLimit: v.GetFloat64(EnvDashboardRateLimit),
		CloseDelay:         v.GetDuration(EnvCloseDelay),
		SelectionTTL:       v.GetDuration(EnvSelectionTTL),
		TicketCategoryName: v.GetString(EnvTicketCategoryName),
		PanelsFile:         v.GetString(EnvPanelsFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DashboardToken == "" {
		l.Info("No dashboard token provided, the dashboard API is disabled", slog.String("key", EnvDashboardToken))
	}

	l.Debug("Configuration loaded",
		slog.String("driver", cfg.DatabaseDriver),
		slog.String("monitoring_port", cfg.MonitoringPort),
	)
	return cfg, nil
}

// Validate checks that the required values are present and the rest are usable.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("%w: %s", ErrMissingValue, EnvBotToken)
	}
	if c.ApplicationId == "" {
		return fmt.Errorf("%w: %s", ErrMissingValue, EnvApplicationId)
	}

	switch c.DatabaseDriver {
	case dataaccess.DriverMongo:
		if c.MongoUri == "" {
			return fmt.Errorf("%w: %s", ErrMissingValue, EnvMongoUri)
		}
	case dataaccess.DriverSqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("%w: %s", ErrMissingValue, EnvSqlitePath)
		}
	default:
		return fmt.Errorf("%w: %s must be %q or %q, got %q", ErrInvalidValue, EnvDatabaseDriver,
			dataaccess.DriverMongo, dataaccess.DriverSqlite, c.DatabaseDriver)
	}

	if c.CloseDelay < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, EnvCloseDelay)
	}
	if c.SelectionTTL <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, EnvSelectionTTL)
	}
	if c.DashboardRateLimit <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidValue, EnvDashboardRateLimit)
	}
	return nil
}
