// Package localnet is an in-memory development validator that speaks the
// JSON-RPC subset used by the client.
//
// HTTP API
//
//	POST /
//	    JSON-RPC 2.0: getHealth, getLatestBlockhash, getBlockHeight,
//	    getBalance, sendTransaction, getSignatureStatuses, getTransaction,
//	    requestAirdrop.
//
//	GET /health
//	    "ok" while the validator is producing slots.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - A new slot, and with it a new blockhash, is produced every slot
//     interval. Block height equals slot.
//   - A transaction landed in slot s is processed, confirmed from slot s+1
//     and finalized from slot s+32.
//   - A blockhash may be referenced for 150 blocks after it was produced.
//   - Each signature costs a fee of 5000 lamports, paid by the fee payer.
//   - Programs are Go handlers registered by address. Instructions for
//     unregistered programs fail.
//   - Unless skipPreflight is set, a transaction that would fail is rejected
//     with a simulation error and leaves no trace.
package localnet
