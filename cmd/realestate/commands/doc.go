// Package commands defines the realestate CLI and wires dependencies for subcommands.
//
// Commands
//
//   - build       Build the on-chain program (optionally rebuilding on change)
//   - initialize  Invoke the program's initialize instruction and print the signature
//   - keygen      Create the payer wallet
//   - address     Print the wallet address and fingerprint
//   - airdrop     Request SOL for the wallet from a development cluster
//   - balance     Print the wallet balance
//   - history     List receipts of submitted instructions
//
// # Implementation
//
// The root command sets up logging, loads the workspace (Anchor.toml plus
// provider environment and flags) and builds a dependency graph (stores,
// RPC client, services) before any subcommand runs.
package commands
