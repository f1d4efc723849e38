package cli

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/syncscope/syncscope"
)

const (
	pathEnv  = ".env"
	pathTOML = "syncscope.toml"

	defInterval    = 10 * time.Second
	defProcessName = "cardano-db-sync"
)

// config collects every knob the subcommands share. Precedence: flags beat
// environment variables, which beat syncscope.toml, which beats defaults.
type config struct {
	LogLevel    string        `env:"SYNCSCOPE_LOG_LEVEL" envDefault:"info"`
	InstanceID  string        `env:"SYNCSCOPE_INSTANCE_ID"`
	Environment string        `env:"SYNCSCOPE_ENVIRONMENT"`
	SyncVersion string        `env:"SYNCSCOPE_DB_SYNC_VERSION"`
	ProcessName string        `env:"SYNCSCOPE_PROCESS_NAME"`
	Interval    time.Duration `env:"SYNCSCOPE_INTERVAL"`
	StorePath   string        `env:"SYNCSCOPE_STORE_PATH"`
	OutputDir   string        `env:"SYNCSCOPE_OUTPUT_DIR"`
	PGHost      string        `env:"SYNCSCOPE_PG_HOST"`
	PGPort      string        `env:"SYNCSCOPE_PG_PORT"`
	PGUser      string        `env:"SYNCSCOPE_PG_USER"`
	PGPassword  string        `env:"SYNCSCOPE_PG_PASSWORD"`
	PGDatabase  string        `env:"SYNCSCOPE_PG_DATABASE"`
	PGSSLMode   string        `env:"SYNCSCOPE_PG_SSLMODE"`
	OTELURL     url.URL       `env:"SYNCSCOPE_OTEL_URL"`
	TraceRatio  float64       `env:"SYNCSCOPE_TRACE_RATIO" envDefault:"0"`
}

func loadConfig() (config, error) {
	if _, err := os.Stat(pathEnv); err == nil {
		_ = godotenv.Load(pathEnv)
	}

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := os.Stat(pathTOML); err == nil {
		fileCfg, err := syncscope.LoadConfig(pathTOML)
		if err != nil {
			return config{}, err
		}
		if err := cfg.applyFile(fileCfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// applyFile fills fields the environment left empty.
func (c *config) applyFile(file *syncscope.Config) error {
	if c.Environment == "" {
		c.Environment = file.Monitor.Environment
	}
	if c.SyncVersion == "" {
		c.SyncVersion = file.Monitor.SyncVersion
	}
	if c.ProcessName == "" {
		c.ProcessName = file.Monitor.ProcessName
	}
	if c.Interval == 0 && file.Monitor.Interval != "" {
		interval, err := time.ParseDuration(file.Monitor.Interval)
		if err != nil {
			return fmt.Errorf("failed to parse interval %q: %w", file.Monitor.Interval, err)
		}
		c.Interval = interval
	}
	if c.PGHost == "" {
		c.PGHost = file.Postgres.Host
	}
	if c.PGPort == "" {
		c.PGPort = file.Postgres.Port
	}
	if c.PGUser == "" {
		c.PGUser = file.Postgres.User
	}
	if c.PGPassword == "" {
		c.PGPassword = file.Postgres.Password
	}
	if c.PGDatabase == "" {
		c.PGDatabase = file.Postgres.Database
	}
	if c.PGSSLMode == "" {
		c.PGSSLMode = file.Postgres.SSLMode
	}
	if c.StorePath == "" {
		c.StorePath = file.Output.StorePath
	}
	if c.OutputDir == "" {
		c.OutputDir = file.Output.Dir
	}

	return nil
}

// finalize fills remaining defaults, deriving database and store names from
// the environment and db-sync version.
func (c *config) finalize() {
	if c.ProcessName == "" {
		c.ProcessName = defProcessName
	}
	if c.Interval <= 0 {
		c.Interval = defInterval
	}
	if c.PGHost == "" {
		c.PGHost = "localhost"
	}
	if c.PGPort == "" {
		c.PGPort = "5432"
	}
	if c.PGUser == "" {
		c.PGUser = "postgres"
	}
	if c.PGSSLMode == "" {
		c.PGSSLMode = "disable"
	}
	if c.PGDatabase == "" {
		c.PGDatabase = fmt.Sprintf("%s_%s_metrics", c.Environment, c.SyncVersion)
	}
	if c.StorePath == "" {
		c.StorePath = fmt.Sprintf("dbsync_%s_stats.db", c.Environment)
	}
	if c.OutputDir == "" {
		c.OutputDir = "plots"
	}
}

// versionTag is the tag every sample written by this run carries.
func (c config) versionTag() string {
	return fmt.Sprintf("%s %s %s", c.ProcessName, c.SyncVersion, c.Environment)
}
