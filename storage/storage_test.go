// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/storage"
)

const (
	dir      = "testing"
	category = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func openStore(t *testing.T, name string) *storage.Store {
	s, err := storage.Open(filepath.Join(dir, name), storage.ReadWrite, logger.New(category))
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return s
}

func TestTransactionPendingAndCommit(t *testing.T) {
	s := openStore(t, "commit.leveldb")
	defer s.Close()

	trx, err := s.Begin()
	assert.Nil(t, err, "begin")
	assert.True(t, trx.InUse(), "transaction not in use")

	_, err = s.Begin()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second begin")

	trx.Put(s.Pool.Anchors, []byte{0, 0, 0, 0, 0, 0, 0, 2}, []byte("two"))
	trx.Put(s.Pool.State, []byte("n"), []byte{42})

	// visible through the transaction but not yet in the database
	assert.Equal(t, []byte("two"), trx.Get(s.Pool.Anchors, []byte{0, 0, 0, 0, 0, 0, 0, 2}), "pending get")
	assert.True(t, trx.Has(s.Pool.State, []byte("n")), "pending has")
	assert.Nil(t, s.Pool.Anchors.Get([]byte{0, 0, 0, 0, 0, 0, 0, 2}), "uncommitted write visible")

	err = trx.Commit()
	assert.Nil(t, err, "commit")
	assert.False(t, trx.InUse(), "transaction still in use")

	assert.Equal(t, []byte("two"), s.Pool.Anchors.Get([]byte{0, 0, 0, 0, 0, 0, 0, 2}), "committed get")
	assert.Equal(t, []byte{42}, s.Pool.State.Get([]byte("n")), "committed n")

	// pools are disjoint
	assert.False(t, s.Pool.Addresses.Has([]byte("n")), "prefix leak")
}

func TestTransactionAbort(t *testing.T) {
	s := openStore(t, "abort.leveldb")
	defer s.Close()

	trx, err := s.Begin()
	assert.Nil(t, err, "begin")
	trx.Put(s.Pool.Addresses, []byte("k"), []byte("v"))
	assert.Nil(t, trx.Commit(), "commit")

	trx, err = s.Begin()
	assert.Nil(t, err, "begin")
	assert.Equal(t, []byte("v"), trx.Get(s.Pool.Addresses, []byte("k")), "committed value through transaction")
	trx.Put(s.Pool.Addresses, []byte("k"), []byte("w"))
	assert.Equal(t, []byte("w"), trx.Get(s.Pool.Addresses, []byte("k")), "pending overwrite")
	trx.Abort()

	assert.Equal(t, []byte("v"), s.Pool.Addresses.Get([]byte("k")), "abort lost committed data")
	assert.False(t, trx.InUse(), "aborted transaction in use")

	// aborted writes are gone from the next transaction
	trx, err = s.Begin()
	assert.Nil(t, err, "begin after abort")
	assert.Equal(t, []byte("v"), trx.Get(s.Pool.Addresses, []byte("k")), "aborted write visible")
	trx.Abort()
}

func TestIterate(t *testing.T) {
	s := openStore(t, "iterate.leveldb")
	defer s.Close()

	trx, err := s.Begin()
	assert.Nil(t, err, "begin")
	trx.Put(s.Pool.Anchors, []byte{3}, []byte("c"))
	trx.Put(s.Pool.Anchors, []byte{1}, []byte("a"))
	trx.Put(s.Pool.Anchors, []byte{2}, []byte("b"))
	trx.Put(s.Pool.State, []byte{0}, []byte("x"))
	assert.Nil(t, trx.Commit(), "commit")

	elements := []storage.Element{}
	err = s.Pool.Anchors.Iterate(func(key []byte, value []byte) error {
		elements = append(elements, storage.Element{Key: key, Value: value})
		return nil
	})
	assert.Nil(t, err, "iterate")
	assert.Equal(t, []storage.Element{
		{Key: []byte{1}, Value: []byte("a")},
		{Key: []byte{2}, Value: []byte("b")},
		{Key: []byte{3}, Value: []byte("c")},
	}, elements, "wrong elements")

	stop := errors.New("stop")
	count := 0
	err = s.Pool.Anchors.Iterate(func(key []byte, value []byte) error {
		count += 1
		return stop
	})
	assert.Equal(t, stop, err, "iterate error not propagated")
	assert.Equal(t, 1, count, "iterate did not stop")
}

func TestReadOnly(t *testing.T) {
	name := filepath.Join(dir, "readonly.leveldb")

	_, err := storage.Open(name, storage.ReadOnly, logger.New(category))
	assert.NotNil(t, err, "read only open of missing database")

	s := openStore(t, "readonly.leveldb")
	s.Close()

	s, err = storage.Open(name, storage.ReadOnly, logger.New(category))
	assert.Nil(t, err, "read only open")
	defer s.Close()

	_, err = s.Begin()
	assert.Equal(t, fault.ErrReadOnly, err, "write transaction on read only store")
}
