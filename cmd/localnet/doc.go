// Command localnet runs the in-memory development validator with the builtin
// programs loaded, so the realestate CLI can be exercised without a real
// cluster.
//
// Usage
//
//	localnet [--addr :8899] [--genesis genesis.yaml] [--fund <pubkey>]... [--verbose]
//
// The HTTP API is documented in package internal/localnet. The validator
// stops on SIGINT or SIGTERM; all state is lost on exit.
package main
