package syncscope

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

type Config struct {
	Monitor  MonitorConfig  `toml:"monitor"`
	Postgres PostgresConfig `toml:"postgres"`
	Output   OutputConfig   `toml:"output"`
}

type MonitorConfig struct {
	Environment string `toml:"environment"`
	SyncVersion string `toml:"db_sync_version"`
	ProcessName string `toml:"process_name"`
	Interval    string `toml:"interval"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"ssl_mode"`
}

type OutputConfig struct {
	StorePath string `toml:"store_path"`
	Dir       string `toml:"dir"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	tree, err := toml.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var cfg Config
	if err := tree.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
