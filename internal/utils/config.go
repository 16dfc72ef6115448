package utils

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"baseURL"`
		Timeout int    `yaml:"timeout"` // seconds
	} `yaml:"api"`
	Source string `yaml:"source"` // "service" or "yahoo"
	Yahoo  struct {
		Years int `yaml:"years"`
	} `yaml:"yahoo"`
	Batch struct {
		Delay     int    `yaml:"delay"` // seconds between tickers
		OutputDir string `yaml:"outputDir"`
	} `yaml:"batch"`
	Logging struct {
		Debug bool `yaml:"debug"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	config := &Config{}
	config.API.BaseURL = "http://localhost:5000"
	config.API.Timeout = 10
	config.Source = "service"
	config.Yahoo.Years = 20
	config.Batch.Delay = 10
	config.Batch.OutputDir = "output"
	return config
}

// LoadConfig reads the YAML config at path on top of the defaults, then
// applies environment overrides. On error the defaults are still returned
// so callers may decide to continue without a file.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		applyEnv(config)
		return config, err
	}

	if err = yaml.Unmarshal(file, config); err != nil {
		return config, err
	}

	applyEnv(config)
	return config, nil
}

// applyEnv layers environment variables over file values.
func applyEnv(config *Config) {
	if v := os.Getenv("STOCK_API_BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("STOCK_SOURCE"); v != "" {
		config.Source = v
	}
}

// APITimeout returns the HTTP request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	if c.API.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.Timeout) * time.Second
}
