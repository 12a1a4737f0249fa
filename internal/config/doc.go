// Package config loads the server's own runtime configuration (listen port,
// public base URL, timeouts, rate limits, log output) from YAML files,
// environment variables and CLI flags with precedence: CLI flags > YAML
// config > Environment variables > Defaults. Values served to clients live
// in the registry package, not here.
package config
