// Package config loads, normalizes, and validates cuesplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours CUESPLIT_* environment overrides
// (optionally sourced from a .env file). The Config type names every external
// binary the pipeline runs, so deployments with non-standard installs only
// need to touch one file.
package config
