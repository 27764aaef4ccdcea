/*
Package ledgertest provides helpers for testing ledgers: unique account
addresses, call contexts, persistent stores and mock receiver contracts.
*/
package ledgertest
