package ledgertest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/store/badgerdb"
)

// BadgerStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as tokenctl is using.
func BadgerStore(t testing.TB) (db tokenledger.CacheableKVStore, cleanup func()) {
	t.Helper()

	dbpath, err := ioutil.TempDir("", "ledgertest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	bs, err := badgerdb.OpenBadger(dbpath)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open badger: %s", err)
	}
	return bs, func() {
		bs.Close()
		os.RemoveAll(dbpath)
	}
}
