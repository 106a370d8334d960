// Package config loads rxview settings.
//
// Settings come from rxview.toml or rxview.json in the working directory,
// then RXVIEW_* environment variables, then command-line flags.
//
// # Configuration File Structure
//
//	[serve]
//	host = "localhost"
//	port = 8080
//	read_timeout = "10s"
//	write_timeout = "10s"
//	title = "rxview"
//
//	[log]
//	level = "info"    # debug, info, warn, error
//	format = "text"   # text, json
//
//	[metrics]
//	enabled = true
//	namespace = "rxview"
//
//	[tracing]
//	name = "rxview"
//
//	[engine]
//	debug = false
//
// The JSON form uses the same sections with camelCase keys
// ("readTimeout"). Environment variables are named after the section and
// key: RXVIEW_SERVE_PORT, RXVIEW_LOG_LEVEL, RXVIEW_METRICS_ENABLED.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
