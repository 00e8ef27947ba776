package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays LEDGER_* environment variables. Variables are first
// seeded from the dotenv file given with -env-file (required to exist) or
// from ./.env when present; variables already set in the process win.
// Malformed numeric or duration values panic.
func parseEnv(config *Config) {
	loadDotenv()

	envString(&config.EndpointAddrHTTP, "LEDGER_HTTP_ADDR")
	envString(&config.EndpointAddrGRPC, "LEDGER_GRPC_ADDR")
	envString(&config.StorageBackend, "LEDGER_STORAGE")
	envString(&config.DatabaseDSN, "LEDGER_DATABASE_DSN")
	envString(&config.SecretKey, "LEDGER_SECRET_KEY")
	envString(&config.LogLevel, "LEDGER_LOG_LEVEL")
	envString(&config.S3RootUser, "LEDGER_S3_ROOT_USER")
	envString(&config.S3RootPassword, "LEDGER_S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "LEDGER_S3_BUCKET")
	envString(&config.S3Region, "LEDGER_S3_REGION")
	envString(&config.S3BaseEndpoint, "LEDGER_S3_BASE_ENDPOINT")
	envDuration(&config.AccessTokenValidityDuration, "LEDGER_ACCESS_TOKEN_TTL")
	envDuration(&config.ExportURLValidity, "LEDGER_EXPORT_URL_TTL")
	envInt(&config.BcryptCost, "LEDGER_BCRYPT_COST")
}

func loadDotenv() {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

func envInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}
