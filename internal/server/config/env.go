package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with environment variables. A dotenv file (given
// by -env, or ./.env when present) is loaded first; variables already set in
// the process environment win over the file.
//
// Recognised variables: GRPC_ADDR, HTTP_ADDR, DATABASE_DSN, SECRET_KEY,
// ACCESS_TOKEN_TTL, REFRESH_TOKEN_TTL, FUNCTIONS_API_KEY, REDIS_URL,
// KAFKA_BROKERS (comma separated), KAFKA_TOPIC, S3_ROOT_USER,
// S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT, LOG_LEVEL.
func parseEnv(cfg *Config) {
	loadEnvFile(flagx.EnvFileFlag())

	setString(&cfg.EndpointAddrGRPC, "GRPC_ADDR")
	setString(&cfg.EndpointAddrHTTP, "HTTP_ADDR")
	setString(&cfg.DatabaseDSN, "DATABASE_DSN")
	setString(&cfg.SecretKey, "SECRET_KEY")
	setDuration(&cfg.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	setDuration(&cfg.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")
	setString(&cfg.FunctionsAPIKey, "FUNCTIONS_API_KEY")
	setString(&cfg.RedisURL, "REDIS_URL")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = splitList(v)
	}
	setString(&cfg.KafkaTopic, "KAFKA_TOPIC")
	setString(&cfg.S3RootUser, "S3_ROOT_USER")
	setString(&cfg.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
}

func loadEnvFile(path string) {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return
	}
	panic(err)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
