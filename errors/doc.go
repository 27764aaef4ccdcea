/*
Package errors implements the error kinds shared by the token ledgers.

Every failure returned by an engine wraps exactly one root error created with
Register. Root errors carry a unique numeric code, so callers can tell which
invariant was violated without parsing messages:

	if nft.ErrNotMinted.Is(err) {
		...
	}

Extensions declare their own root errors in an errors.go file of their
package, using a code range that is not used by any other extension:

	errors       2 ~ 99
	orm          100 ~ 109
	x/nft        500 ~ 599
	x/multitoken 600 ~ 699

Wrap or create the error at the point of failure, using ErrXyz.New("...") or
errors.Wrap(err, "..."), so that a stacktrace is attached. Only the first wrap
records the stack.

Once you have an error, fmt gives more context:

	%s is just the error message
	%+v is the full stack trace
*/
package errors
