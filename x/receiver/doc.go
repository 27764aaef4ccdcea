/*
Package receiver implements the acceptance protocol a ledger runs before a
safe transfer completes.

When tokens are sent to an address that has a contract associated with it
(see tokenledger.Host), the ledger calls back into that contract. The
contract must implement the matching receiver interface and answer with the
expected acknowledgment value. A missing callback, a failing or panicking
callback, or a wrong acknowledgment all void the transfer with
errors.ErrUnsafeRecipient. Plain accounts always accept.

The callback runs after the ledger updated its own state and shares the
ledger's open savepoint, so it observes the post transfer state and any
write it makes is rolled back with the transfer. Within the callback the
caller is the receiver contract, so it may move what it was just handed but
holds no authority of the ledger. LedgerOf tells which ledger is calling.
*/
package receiver
