package tokenledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/tokenledger"
)

func TestVersion(t *testing.T) {
	defer func(c string) { tokenledger.GitCommit = c }(tokenledger.GitCommit)

	tokenledger.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", tokenledger.Version())

	tokenledger.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", tokenledger.Version())
}
