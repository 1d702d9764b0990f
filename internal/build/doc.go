// Package build runs the program's build command in its directory and
// reports the outcome.
//
// The command runs in a local shell session. A zero exit status prints
// "Build successful"; anything else prints "Build failed" and is returned as
// an *ExitError carrying the status so callers can exit with it.
//
// Watch rebuilds whenever Rust sources or manifests under the program
// directory change.
package build
