// Package confirm waits for a submitted transaction to reach a commitment
// level.
//
// Confirm polls getSignatureStatuses until one of:
//   - the status reaches the requested commitment (success)
//   - the transaction executed with an error (*TransactionError)
//   - the block height passes the blockhash's last valid height
//     (ErrBlockhashExpired)
//   - the context is done
package confirm
