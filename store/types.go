package store

import "github.com/iov-one/tokenledger"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = tokenledger.ReadOnlyKVStore
type SetDeleter = tokenledger.SetDeleter
type KVStore = tokenledger.KVStore
type Batch = tokenledger.Batch
type Iterator = tokenledger.Iterator
type CacheableKVStore = tokenledger.CacheableKVStore
type KVCacheWrap = tokenledger.KVCacheWrap
