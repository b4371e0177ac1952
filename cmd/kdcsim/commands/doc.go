// Package commands defines the kdcsim CLI and wires dependencies for subcommands.
//
// Commands
//
//   - demo         Run the two-party walkthrough: request, grants, "Hello, B!"
//   - exchange     Run one key exchange between two configured participants
//     and deliver a message
//   - fingerprint  Print the long-term key fingerprint of a participant
//   - metrics      Run the walkthrough and print the KDC counters
//
// # Implementation
//
// The root command loads the TOML config (--config) and builds the dependency
// graph (logging, registry, KDC, channel, participants) before any subcommand
// runs. Every run starts from freshly generated keys; nothing is persisted.
package commands
