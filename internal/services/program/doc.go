// Package program is the client handle for one deployed program.
//
// Invoking an instruction fetches a recent blockhash, signs a transaction
// with the payer, submits it with preflight simulation, waits for the
// configured commitment, and records a receipt of the outcome.
package program
