// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/messagebus"
	"github.com/bitmark-inc/runledger/mutation"
)

const (
	dir      = "testing"
	category = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(dir)
	_ = os.Mkdir(dir, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	_ = os.RemoveAll(dir)
	os.Exit(rc)
}

// compile time check
var _ mutation.Notifier = (*messagebus.Queue)(nil)

func TestQueue(t *testing.T) {
	queue := messagebus.New(10, logger.New(category))

	items := []string{"c1", "c2", "c3"}
	for _, item := range items {
		queue.Send(item)
	}

	c := queue.Chan()
	for _, item := range items {
		received := <-c
		assert.Equal(t, item, received.Command, "wrong command")
	}
}

func TestDrop(t *testing.T) {
	queue := messagebus.New(2, logger.New(category))

	queue.Send("c1")
	queue.Send("c2")
	queue.Send("c3")

	assert.Equal(t, uint64(1), queue.Dropped(), "dropped")
	assert.Equal(t, "c1", (<-queue.Chan()).Command, "first")
	assert.Equal(t, "c2", (<-queue.Chan()).Command, "second")
}

func TestNotifications(t *testing.T) {
	queue := messagebus.New(0, logger.New(category))

	from := account.Address{0x01}
	to := account.Address{0x02}

	queue.Transferred(from, to, 42)
	queue.RangeAssigned(account.Zero, to, 100, 5000)
	queue.Burned(from, 7)

	received := <-queue.Chan()
	assert.Equal(t, messagebus.TransferCommand, received.Command, "transfer command")
	assert.Equal(t, 1, len(received.Parameters), "transfer parameters")
	var transfer messagebus.TransferItem
	assert.Nil(t, json.Unmarshal(received.Parameters[0], &transfer), "transfer json")
	assert.Equal(t, messagebus.TransferItem{From: from, To: to, ID: 42}, transfer, "transfer item")

	received = <-queue.Chan()
	assert.Equal(t, messagebus.RangeCommand, received.Command, "range command")
	var assigned messagebus.RangeItem
	assert.Nil(t, json.Unmarshal(received.Parameters[0], &assigned), "range json")
	assert.Equal(t, messagebus.RangeItem{From: account.Zero, To: to, Start: 100, Count: 5000}, assigned, "range item")

	received = <-queue.Chan()
	assert.Equal(t, messagebus.BurnCommand, received.Command, "burn command")
	var burned messagebus.BurnItem
	assert.Nil(t, json.Unmarshal(received.Parameters[0], &burned), "burn json")
	assert.Equal(t, messagebus.BurnItem{Owner: from, ID: 7}, burned, "burn item")
}
