// Package app wires application dependencies for the CLI.
//
// It builds the logging backend, key registry, metrics, KDC and in-process
// channel from a config.Config, registers the configured participants and
// provisions each with its long-term key, exposing everything via the Wire
// struct for commands to use.
package app
