/*
Package api provides a read only HTTP JSON interface to the joint accounts.

It serves snapshots of the last committed state to a presentation layer:

  GET /accounts/{id}
  GET /accounts/{id}/owners
  GET /accounts/{id}/balance
  GET /accounts/{id}/withdrawals
  GET /accounts/{id}/withdrawals/{wid}
  GET /accounts/{id}/withdrawals/{wid}/approvals
  GET /participants/{address}/accounts
  GET /events?query=...

The events endpoint streams notifications of committed transitions as
server sent events.
*/
package api
