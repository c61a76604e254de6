package crawl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the crawl configuration file: the faculty profile URLs to
// fetch and, optionally, where to keep the result store.
type Config struct {
	ProfileURLs []string `yaml:"profile_urls"`
	Store       string   `yaml:"store"`
}

// LoadConfig reads and decodes the YAML crawl configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crawl config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse crawl config %s: %w", path, err)
	}
	if len(cfg.ProfileURLs) == 0 {
		return nil, fmt.Errorf("crawl config %s lists no profile_urls", path)
	}
	return &cfg, nil
}
