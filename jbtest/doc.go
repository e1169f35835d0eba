/*
Package jbtest provides helpers for testing ledger extensions and the
application: authentication mocks, random identities and an in-memory
notification recorder.
*/
package jbtest
