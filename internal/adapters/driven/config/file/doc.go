// Package file loads folio settings from configuration files and the environment.
//
// Resolution order, later steps overriding earlier ones:
//
//   - built-in defaults (domain.DefaultSettings)
//   - a .env file in the working directory (only fills unset variables)
//   - the config file: TOML by default, YAML for .yaml/.yml
//   - FOLIO_* environment variables
//
// CLI flags are applied on top by the driving adapter.
package file
