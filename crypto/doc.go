/*
Package crypto provides the ed25519 keys participants sign their
transactions with.

The address of a participant is derived from its public key, so a
verified signature yields the caller identity that all ledger operations
are authorized against.
*/
package crypto
