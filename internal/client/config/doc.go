// Package config loads runtime configuration for the ledger CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the ledger HTTP API
//	-t int      request timeout (seconds)
//	-d string   directory for downloaded exports
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds. Absent keys keep their defaults:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:3000",
//	  "request_timeout": "10s",
//	  "export_dir": "exports"
//	}
package config
