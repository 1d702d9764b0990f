// Package tracing is a thin wrapper around OpenTelemetry so the rest of the
// code base can open and close spans without importing the SDK directly.
//
// Until Init is called the global no-op provider is used and spans cost
// nothing. Init installs a stdout exporter writing to a file or os.Stdout.
package tracing
