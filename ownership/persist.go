// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/registry"
	"github.com/bitmark-inc/runledger/storage"
)

// from storage/doc.go:
//
//   A ⧺ id        - anchor
//   R ⧺ owner     - address record
//   S ⧺ "ledger"  - start id ⧺ current index ⧺ total burned

var stateKey = []byte("ledger")

// structure of the state record
const (
	startIDStart  = 0
	startIDFinish = startIDStart + uint64ByteSize

	currentIndexStart  = startIDFinish
	currentIndexFinish = currentIndexStart + uint64ByteSize

	totalBurnedStart  = currentIndexFinish
	totalBurnedFinish = totalBurnedStart + uint64ByteSize

	statePackLength = totalBurnedFinish
)

// Save - write all changes since the last save as one batch
//
// must hold the write lock, since the change sets are reset
func (l *Ledger) Save(store *storage.Store) error {
	trx, err := store.Begin()
	if nil != err {
		return err
	}

	for id := range l.dirty {
		trx.Put(store.Pool.Anchors, idKey(id), l.anchors[id].Pack())
	}

	records := l.registry.Dirty()
	written := 0
	for owner, record := range records {
		packed := record.Pack()
		if bytes.Equal(packed, trx.Get(store.Pool.Addresses, owner.Bytes())) {
			continue
		}
		trx.Put(store.Pool.Addresses, owner.Bytes(), packed)
		written += 1
	}

	if l.stateDirty {
		state := make([]byte, statePackLength)
		binary.BigEndian.PutUint64(state[startIDStart:startIDFinish], l.startID)
		binary.BigEndian.PutUint64(state[currentIndexStart:currentIndexFinish], l.currentIndex)
		binary.BigEndian.PutUint64(state[totalBurnedStart:totalBurnedFinish], l.totalBurned)
		trx.Put(store.Pool.State, stateKey, state)
	}

	// the committed result must be loadable
	if l.currentIndex > l.startID && !trx.Has(store.Pool.Anchors, idKey(l.startID)) {
		trx.Abort()
		l.log.Criticalf("save: no anchor at start id: %d", l.startID)
		return fault.ErrCorruptRecord
	}

	anchorCount := len(l.dirty)
	if err := trx.Commit(); nil != err {
		l.log.Errorf("save: commit error: %s", err)
		return err
	}

	l.dirty = make(map[uint64]struct{})
	l.stateDirty = false
	l.registry.Clean()

	l.log.Debugf("save: anchors: %d  addresses: %d/%d  current index: %d", anchorCount, written, len(records), l.currentIndex)
	return nil
}

// Load - restore a ledger saved by Save
//
// returns fault.ErrNotInitialised if the store holds no ledger
func Load(store *storage.Store, log *logger.L) (*Ledger, error) {
	state := store.Pool.State.Get(stateKey)
	if nil == state {
		return nil, fault.ErrNotInitialised
	}
	if statePackLength != len(state) {
		log.Criticalf("load: state record length: %d", len(state))
		return nil, fault.ErrCorruptRecord
	}

	r := registry.New()
	l := New(binary.BigEndian.Uint64(state[startIDStart:startIDFinish]), r, log)
	l.currentIndex = binary.BigEndian.Uint64(state[currentIndexStart:currentIndexFinish])
	l.totalBurned = binary.BigEndian.Uint64(state[totalBurnedStart:totalBurnedFinish])
	l.stateDirty = false

	if l.currentIndex < l.startID || l.totalBurned > l.currentIndex-l.startID {
		log.Criticalf("load: start id: %d  current index: %d  total burned: %d", l.startID, l.currentIndex, l.totalBurned)
		return nil, fault.ErrCorruptRecord
	}

	err := store.Pool.Anchors.Iterate(func(key []byte, value []byte) error {
		if uint64ByteSize != len(key) {
			return fault.ErrCorruptRecord
		}
		a, err := PackedAnchor(value).Unpack()
		if nil != err {
			return err
		}
		l.anchors[binary.BigEndian.Uint64(key)] = a
		return nil
	})
	if nil != err {
		log.Criticalf("load: anchors error: %s", err)
		return nil, err
	}

	err = store.Pool.Addresses.Iterate(func(key []byte, value []byte) error {
		owner, err := account.FromBytes(key)
		if nil != err {
			return fault.ErrCorruptRecord
		}
		record, err := registry.PackedRecord(value).Unpack()
		if nil != err {
			return err
		}
		r.Import(owner, record)
		return nil
	})
	if nil != err {
		log.Criticalf("load: addresses error: %s", err)
		return nil, err
	}

	// every assigned run must be reachable by the resolver
	if l.currentIndex > l.startID {
		if _, ok := l.anchors[l.startID]; !ok {
			log.Criticalf("load: no anchor at start id: %d", l.startID)
			return nil, fault.ErrCorruptRecord
		}
	}

	log.Infof("load: start id: %d  current index: %d  total burned: %d  anchors: %d", l.startID, l.currentIndex, l.totalBurned, len(l.anchors))
	return l, nil
}
