package config

import (
	"net/url"
	"time"
)

// GraphQLPath is the fixed path of the GraphQL endpoint on the API server.
const GraphQLPath = "/graphql"

// Config holds runtime settings for the client.
type Config struct {
	ServerURL         string
	DatabasePath      string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	MetricsAddr       string
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3001"
	c.DatabasePath = "gophsocial.db"
	c.RequestTimeout = 10 * time.Second
	c.RequestsPerSecond = 5
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// GraphQLEndpoint joins ServerURL with GraphQLPath.
func (c *Config) GraphQLEndpoint() (string, error) {
	return url.JoinPath(c.ServerURL, GraphQLPath)
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// (if one is named in args) and finally the flags in args. args excludes the
// program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
