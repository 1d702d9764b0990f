// Package rpc provides a JSON-RPC 2.0 implementation of the domain.RPCClient
// interface used to reach a cluster.
//
// Supported methods:
//   - getHealth, getLatestBlockhash, getBlockHeight, getBalance
//   - sendTransaction (base64 wire encoding, optional preflight)
//   - getSignatureStatuses (searching transaction history)
//   - getTransaction (json encoding, for log messages)
//   - requestAirdrop
//
// Requests are POSTed to the endpoint with a random request id and accept a
// context for cancellation and deadlines. Non-2xx statuses are returned as
// errors with the method, URL and status text; JSON-RPC error objects are
// returned as *Error.
package rpc
