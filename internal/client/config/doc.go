// Package config loads runtime configuration for the gophsocial client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API server (the GraphQL endpoint is <base>/graphql)
//	-d string   path of the local SQLite database holding the session
//	-t int      request timeout (seconds)
//	-r float    outbound requests per second (0 disables the limit)
//	-m string   address for the /metrics listener (empty disables it)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3001",
//	  "database_path": "gophsocial.db",
//	  "request_timeout": "10s",
//	  "requests_per_second": 5,
//	  "metrics_addr": "127.0.0.1:9100",
//	  "log_level": "info"
//	}
package config
