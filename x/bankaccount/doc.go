/*
Package bankaccount implements shared custodial accounts.

A group of participants jointly owns an account and its pooled balance. Any
owner may deposit. Withdrawals follow a request, approve and execute
workflow: an owner requests a withdrawal, other owners approve it, and once
a quorum of owners approved, the requester executes the withdrawal and the
value leaves the pool.

The Controller implements all state transitions on top of a KVStore. The
Ledger wraps a Controller with a single writer lock, per operation
savepoints and notifications and is the entry point for embedding the
accounts in a process. Transaction handlers expose the same operations to
the application.
*/
package bankaccount
