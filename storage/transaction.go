// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/runledger/fault"
)

// Transaction - batch of writes committed atomically
//
// reads through the transaction see the pending writes
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Commit() error
	Abort()
}

type transaction struct {
	sync.Mutex
	inUse bool
	store *Store
	batch *leveldb.Batch
	cache Cache
}

func newTransaction(store *Store) *transaction {
	return &transaction{
		store: store,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}

func (t *transaction) begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionInUse
	}
	t.inUse = true
	return nil
}

func (t *transaction) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}

func (t *transaction) Put(handle *PoolHandle, key []byte, value []byte) {
	prefixed := handle.prefixKey(key)
	t.cache.Set(string(prefixed), value)
	t.batch.Put(prefixed, value)
}

func (t *transaction) Get(handle *PoolHandle, key []byte) []byte {
	if value, found := t.cache.Get(string(handle.prefixKey(key))); found {
		return value
	}
	return handle.Get(key)
}

func (t *transaction) Has(handle *PoolHandle, key []byte) bool {
	if _, found := t.cache.Get(string(handle.prefixKey(key))); found {
		return true
	}
	return handle.Has(key)
}

// Commit - write the batch, the transaction is finished either way
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	defer t.reset()

	t.store.RLock()
	defer t.store.RUnlock()
	if nil == t.store.db {
		return fault.ErrNotInitialised
	}
	return t.store.db.Write(t.batch, nil)
}

// Abort - discard all pending writes
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.reset()
}

// must hold the lock
func (t *transaction) reset() {
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}
