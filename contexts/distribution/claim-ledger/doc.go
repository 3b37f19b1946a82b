// Package claimledger implements the single-claim faucet ledger.
//
// The module owns the claim registry, ledger configuration, and event outbox
// tables, and exposes HTTP command/query handlers plus the outbox relay worker
// that publishes ledger events to the message bus.
package claimledger
