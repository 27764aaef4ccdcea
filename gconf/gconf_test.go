package gconf

import (
	"testing"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/ledgertest"
	"github.com/iov-one/tokenledger/ledgertest/assert"
	"github.com/iov-one/tokenledger/store"
)

type stringConf struct {
	Value string
}

func (c *stringConf) Validate() error {
	if c.Value == "" {
		return errors.Field("Value", errors.ErrEmpty, "required")
	}
	return nil
}

type addressConf struct {
	Value tokenledger.Address
}

func (c *addressConf) Validate() error {
	return c.Value.Validate()
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        Validator
		Want        interface{}
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"string": {
			Conf: &stringConf{Value: "foobar"},
			Want: &stringConf{},
		},
		"address": {
			Conf: &addressConf{Value: ledgertest.NewAddress()},
			Want: &addressConf{},
		},
		"invalid address cannot be saved": {
			Conf:        &addressConf{Value: tokenledger.Address("too short")},
			WantSaveErr: errors.ErrInvalidInput,
		},
		"empty string cannot be saved": {
			Conf:        &stringConf{},
			WantSaveErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			key := Key("test", testName)
			if err := Save(db, key, tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}
			if err := Load(db, key, tc.Want); !tc.WantLoadErr.Is(err) {
				t.Fatalf("unexpected load error: %s", err)
			}
			assert.Equal(t, tc.Conf, tc.Want)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var conf stringConf
	err := Load(db, Key("test", "missing"), &conf)
	assert.IsErr(t, errors.ErrNotFound, err)
}
