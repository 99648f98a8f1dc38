// Package config provides configuration loading and validation for the
// audio splitter. It handles YAML-based configuration with struct
// validation; command-line flags layer on top of loaded values.
package config
