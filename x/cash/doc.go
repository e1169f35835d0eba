/*
Package cash keeps the wallets of participants.

A wallet holds the value a participant owns outside of any shared account.
Depositing into a shared account moves value from the depositor wallet into
the custody wallet, and an executed withdrawal moves it from custody back to
the wallet of the requester. The total amount of value is never changed by
those transfers.
*/
package cash
