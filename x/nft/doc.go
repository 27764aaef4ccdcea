/*
Package nft implements a non-fungible token ledger.

Every token identifier has at most one owner. An owner may approve a single
spender per token, and may approve operators allowed to manage all of its
tokens. Ownership changes always clear the token approval.

All mutating operations read the caller from the context and run as one
atomic call: on any failure, including a rejection by the recipient of a
safe transfer, no state and no event persists.

Mint and Burn check no authority at all. Anyone may mint to any account and
burn any token. A host exposing them to untrusted callers must gate them
itself.
*/
package nft
