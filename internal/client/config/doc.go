// Package config loads runtime configuration for the guialocal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "functions_base_url": "http://127.0.0.1:8080",
//	  "api_key": "public-anon-key",
//	  "session_check_interval": "5m",
//	  "log_level": "warn"
//	}
package config
