// Package workspace loads the program workspace: Anchor.toml, provider
// environment overrides and the generated IDLs under target/idl.
//
// Settings resolve in this order, later sources winning: built-in defaults,
// Anchor.toml, REALESTATE_* environment variables, ANCHOR_PROVIDER_URL and
// ANCHOR_WALLET, then command-line flags.
package workspace
