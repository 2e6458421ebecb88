// Package config loads, normalizes, and validates subclean configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the SUBCLEAN_LOG_LEVEL environment override. A
// missing configuration file is not an error: the defaults reproduce the
// standard five-pass cleaning behaviour with history disabled.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log settings, and clear validation errors.
package config
