package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/guialocal/internal/flagx"
	"github.com/dmitrijs2005/guialocal/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Interval fields
// use timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	FunctionsAPIKey              string         `json:"functions_api_key"`
	RedisURL                     string         `json:"redis_url"`
	KafkaBrokers                 []string       `json:"kafka_brokers"`
	KafkaTopic                   string         `json:"kafka_topic"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	LogLevel                     string         `json:"log_level"`
}

// parseJson overlays Config with the file named by -c/-config. Keys missing
// from the file leave the current value alone. Unreadable or malformed files
// panic, as a bad config must stop the server before it listens.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	override(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	override(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	override(&config.DatabaseDSN, c.DatabaseDSN)
	override(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	override(&config.FunctionsAPIKey, c.FunctionsAPIKey)
	override(&config.RedisURL, c.RedisURL)
	if len(c.KafkaBrokers) > 0 {
		config.KafkaBrokers = c.KafkaBrokers
	}
	override(&config.KafkaTopic, c.KafkaTopic)
	override(&config.S3RootUser, c.S3RootUser)
	override(&config.S3RootPassword, c.S3RootPassword)
	override(&config.S3Bucket, c.S3Bucket)
	override(&config.S3Region, c.S3Region)
	override(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	override(&config.LogLevel, c.LogLevel)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
