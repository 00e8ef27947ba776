package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("LEDGER_HTTP_ADDR", ":8081")
	t.Setenv("LEDGER_STORAGE", "memory")
	t.Setenv("LEDGER_SECRET_KEY", "env-secret")
	t.Setenv("LEDGER_ACCESS_TOKEN_TTL", "90s")
	t.Setenv("LEDGER_BCRYPT_COST", "8")
	t.Setenv("LEDGER_S3_BUCKET", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":8081", cfg.EndpointAddrHTTP)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 8, cfg.BcryptCost)
	assert.Equal(t, "ledger-exports", cfg.S3Bucket, "empty variables are ignored")
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_LOG_LEVEL=debug\nLEDGER_GRPC_ADDR=:7000\n"), 0o600))
	t.Setenv("LEDGER_GRPC_ADDR", ":6000")
	t.Cleanup(func() { _ = os.Unsetenv("LEDGER_LOG_LEVEL") })

	os.Args = []string{"testbin", "-env-file", path}

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC, "process environment wins over dotenv")
}

func Test_parseEnv_Malformed(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Run("duration", func(t *testing.T) {
		t.Setenv("LEDGER_EXPORT_URL_TTL", "later")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("int", func(t *testing.T) {
		t.Setenv("LEDGER_BCRYPT_COST", "high")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("missing dotenv file", func(t *testing.T) {
		os.Args = []string{"testbin", "-env-file", filepath.Join(t.TempDir(), "absent.env")}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
