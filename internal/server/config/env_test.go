package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "empty env keeps defaults",
			env:  map[string]string{},
			check: func(t *testing.T, c *Config) {
				var want Config
				want.LoadDefaults()
				assert.Equal(t, want, *c)
			},
		},
		{
			name: "all variables",
			env: map[string]string{
				"DATA_DIR":                    "/var/lib/sk",
				"SECRET_KEY":                  "s3cr3t",
				"ACCESS_TOKEN_EXPIRE_MINUTES": "30",
				"HOST":                        "0.0.0.0",
				"PORT":                        "9000",
				"GRPC_ADDR":                   ":6000",
				"CORS_ORIGINS":                `["https://a.example","https://b.example"]`,
				"DEBUG":                       "true",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "/var/lib/sk", c.DataDir)
				assert.Equal(t, "s3cr3t", c.SecretKey)
				assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
				assert.Equal(t, "0.0.0.0:9000", c.EndpointAddrHTTP)
				assert.Equal(t, ":6000", c.EndpointAddrGRPC)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
				assert.True(t, c.Debug)
			},
		},
		{
			name: "port only keeps default host",
			env:  map[string]string{"PORT": "8081"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":8081", c.EndpointAddrHTTP)
			},
		},
		{
			name: "comma separated origins",
			env:  map[string]string{"CORS_ORIGINS": "https://a.example, https://b.example,"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.LoadDefaults()
			parseEnv(c, mapLookup(tt.env))
			tt.check(t, c)
		})
	}
}

func TestParseEnv_InvalidPanics(t *testing.T) {
	for _, env := range []map[string]string{
		{"ACCESS_TOKEN_EXPIRE_MINUTES": "soon"},
		{"DEBUG": "maybe"},
		{"CORS_ORIGINS": `["unterminated"`},
	} {
		c := &Config{}
		require.Panics(t, func() { parseEnv(c, mapLookup(env)) })
	}
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# local overrides\nDATA_DIR=./tmp-data\nSECRET_KEY=\"quoted secret\"\nACCESS_TOKEN_EXPIRE_MINUTES=15\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	env, err := godotenv.Read(path)
	require.NoError(t, err)

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c, mapLookup(env))

	assert.Equal(t, "./tmp-data", c.DataDir)
	assert.Equal(t, "quoted secret", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
}

func TestLoadDotEnv_DoesNotOverrideProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SECRET_KEY=from-file\n"), 0o600))
	t.Setenv("SECRET_KEY", "from-process")

	loadDotEnv(path)

	assert.Equal(t, "from-process", os.Getenv("SECRET_KEY"))
}
