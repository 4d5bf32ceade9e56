// Package config loads the project configuration: the cppdoc.toml manifest
// or the YAML configuration of the original documentation generator.
package config
