/*
Package tokenledger defines the interfaces shared by the token ledger
engines: key value storage with savepoints, account addresses, the call
context and the host capability used to detect contracts.

The engines themselves live in x/nft and x/multitoken. Both run every
mutating call through x/utils.Run, which opens a cache wrap over the store,
writes it on success and discards it on any failure.
*/
package tokenledger
