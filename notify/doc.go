/*
Package notify provides jointbank.Notifier implementations that deliver
account events to collaborators outside of the ledger.

Events are published only after the state transition producing them was
persisted. Delivery is best effort: a sink that cannot deliver an event
logs the failure and never fails the transition.
*/
package notify
