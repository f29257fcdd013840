// Package config handles configuration for the server component,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the settingskeeper server.
//
// Fields:
//   - DataDir: directory holding users.csv and user_settings.csv.
//   - EndpointAddrHTTP: bind address for the REST API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - CORSOrigins: origins allowed to call the REST API from a browser.
//   - Debug: enables debug level logging.
type Config struct {
	DataDir                     string
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	CORSOrigins                 []string
	Debug                       bool
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DataDir = "./data"
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "your-secret-key-change-in-production"
	c.AccessTokenValidityDuration = 7 * 24 * time.Hour
	c.CORSOrigins = []string{"http://localhost:9000", "http://localhost:8080"}
	c.Debug = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (.env included), an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseEnv(cfg, osLookup)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
