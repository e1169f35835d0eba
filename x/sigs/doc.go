/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain sequences for replay protection.

Every signature carries the public key of the signer and the current
sequence of that key. A signature is valid only for a single chain and a
single sequence value, so a signed transaction cannot be submitted twice.
The addresses of all valid signers are made available to the handlers
through the Authenticate implementation of jointbank.Authenticator.
*/
package sigs
