// Package config loads, normalizes, and validates recode configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the default conversion target, the detection strategy and
// confidence floor, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// canonical encoding names, a known detection strategy, and clear validation
// errors.
package config
