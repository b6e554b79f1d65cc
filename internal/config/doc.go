// Package config loads, normalizes, and validates sublaunch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SUBLAUNCH_CONFIG environment
// override. Relative launcher paths (the virtual environment directory and the
// subtitle script) are kept relative until a base directory is known, because
// the launcher resolves them against its own location at run time.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
