package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "./data", c.DataDir)
	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "your-secret-key-change-in-production", c.SecretKey)
	assert.Equal(t, 10080*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, []string{"http://localhost:9000", "http://localhost:8080"}, c.CORSOrigins)
	assert.False(t, c.Debug)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	for _, k := range []string{"DATA_DIR", "SECRET_KEY", "ACCESS_TOKEN_EXPIRE_MINUTES", "HOST", "PORT", "GRPC_ADDR", "CORS_ORIGINS", "DEBUG"} {
		t.Setenv(k, "")
	}
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Layering(t *testing.T) {
	t.Setenv("DATA_DIR", "/from/env")
	t.Setenv("SECRET_KEY", "env-secret")
	for _, k := range []string{"ACCESS_TOKEN_EXPIRE_MINUTES", "HOST", "PORT", "GRPC_ADDR", "CORS_ORIGINS", "DEBUG"} {
		t.Setenv(k, "")
	}

	path := writeTempJSON(t, "", "", map[string]any{"secret_key": "json-secret"})

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-c", path, "-a", ":9999"}

	c := LoadConfig()

	assert.Equal(t, "/from/env", c.DataDir, "env overrides defaults")
	assert.Equal(t, "json-secret", c.SecretKey, "json overrides env")
	assert.Equal(t, ":9999", c.EndpointAddrHTTP, "flags override everything")
}
