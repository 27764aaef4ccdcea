/*
Package utils contains the call runner shared by the ledgers.

Every mutating ledger operation is a Call. Run passes it through a fixed
stack of decorators:

	Logging -> Savepoint -> Recovery -> Call

Logging reports the outcome and duration, Savepoint isolates all writes in
a cache wrap that is only written when the call succeeds, and Recovery
turns a panic into an ErrPanic error so that the savepoint discards it.
*/
package utils
