// Package commands provides the command-line interface for the goseal tool.
//
// It implements commands for:
//   - key generation
//   - sealing files into encrypted packet streams
//   - opening packet streams back into files
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
