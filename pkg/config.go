package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ServerConfig is the framework's fixed configuration surface: network,
// concurrency, and TLS settings loaded from a TOML or YAML file, unlike the
// open-ended per-key configuration store this is adapted from — brisk's
// config shape is small and known ahead of time, so it is unmarshaled
// directly into a typed struct rather than kept as a generic map.
type ServerConfig struct {
	Network string `toml:"network" yaml:"network"`
	Address string `toml:"address" yaml:"address"`

	WorkerCount   int `toml:"worker_count" yaml:"worker_count"`
	SlotTableSize int `toml:"slot_table_size" yaml:"slot_table_size"`
	TaskPoolSize  int `toml:"task_pool_size" yaml:"task_pool_size"`

	ReadBuffer  int `toml:"read_buffer" yaml:"read_buffer"`
	WriteBuffer int `toml:"write_buffer" yaml:"write_buffer"`

	ReuseAddr bool `toml:"reuse_addr" yaml:"reuse_addr"`
	ReusePort bool `toml:"reuse_port" yaml:"reuse_port"`

	DispensePolicy string `toml:"dispense_policy" yaml:"dispense_policy"` // "round_robin" or "least_active"

	TLSCertFile string `toml:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile  string `toml:"tls_key_file" yaml:"tls_key_file"`

	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// ApplyDefaults fills in zero-valued fields with the framework's defaults.
func (c *ServerConfig) ApplyDefaults() {
	if c.Network == "" {
		c.Network = "tcp"
	}
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = 4
	}
	if c.SlotTableSize == 0 {
		c.SlotTableSize = 1024
	}
	if c.TaskPoolSize == 0 {
		c.TaskPoolSize = 64
	}
	if c.DispensePolicy == "" {
		c.DispensePolicy = "round_robin"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Policy translates DispensePolicy into the reactor's enum.
func (c *ServerConfig) Policy() DispensePolicy {
	if c.DispensePolicy == "least_active" {
		return DispenseLeastActive
	}
	return DispenseRoundRobin
}

// LoadConfig reads and parses a TOML or YAML configuration file, chosen by
// its extension, and applies defaults to whatever the file left unset.
func LoadConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, &FrameworkError{Code: ErrCodeConfigurationError, Message: fmt.Sprintf("parse toml config: %v", err), Cause: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &FrameworkError{Code: ErrCodeConfigurationError, Message: fmt.Sprintf("parse yaml config: %v", err), Cause: err}
		}
	default:
		return cfg, &FrameworkError{Code: ErrCodeConfigurationError, Message: fmt.Sprintf("unsupported config format: %s", ext)}
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
