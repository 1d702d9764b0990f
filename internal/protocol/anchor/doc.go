// Package anchor implements the program interface conventions used by
// Anchor-built programs: instruction discriminators, IDL files and the
// framework's error codes.
//
// An instruction's data starts with an 8-byte discriminator, the first bytes
// of sha256("global:<snake_case name>"), followed by its Borsh-encoded
// arguments. Instructions without arguments carry the discriminator only.
package anchor
