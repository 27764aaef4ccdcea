/*
Package multitoken implements a multi token ledger, where every account
holds an integer balance per token identifier.

Single and batch variants exist for mint, burn and transfer. A batch is
applied pair by pair against the running balances and is atomic: when any
pair fails, no balance of the batch changes.

Mint, MintBatch, Burn and BurnBatch are not authenticated. The caller, when
present, is only recorded as the operator of the event. Hosts that expose
them to untrusted callers must gate them. Transfers require the caller to be
the holder or one of its approved operators.
*/
package multitoken
