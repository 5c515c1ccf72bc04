// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/counter"
)

// internal constants
const (
	DefaultQueueSize = 1000
)

// message commands
const (
	TransferCommand = "transfer"
	RangeCommand    = "range"
	BurnCommand     = "burn"
)

// Message - a command and its parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// Queue - buffered channel of messages
type Queue struct {
	log     *logger.L
	c       chan Message
	dropped counter.Counter
}

// New - create a queue holding up to size messages
func New(size int, log *logger.L) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		log: log,
		c:   make(chan Message, size),
	}
}

// Send - queue a message, drop it if the queue is full
func (queue *Queue) Send(command string, parameters ...[]byte) {
	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
	default:
		queue.dropped.Increment()
		queue.log.Warnf("queue full, dropped: %s", command)
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Dropped - count of messages lost to a full queue
func (queue *Queue) Dropped() uint64 {
	return queue.dropped.Uint64()
}

// TransferItem - parameter of a transfer message
type TransferItem struct {
	From account.Address `json:"from"`
	To   account.Address `json:"to"`
	ID   uint64          `json:"id"`
}

// RangeItem - parameter of a range message
type RangeItem struct {
	From  account.Address `json:"from"`
	To    account.Address `json:"to"`
	Start uint64          `json:"start"`
	Count uint64          `json:"count"`
}

// BurnItem - parameter of a burn message
type BurnItem struct {
	Owner account.Address `json:"owner"`
	ID    uint64          `json:"id"`
}

// Transferred - queue a transfer message
func (queue *Queue) Transferred(from account.Address, to account.Address, id uint64) {
	queue.sendJSON(TransferCommand, TransferItem{From: from, To: to, ID: id})
}

// RangeAssigned - queue a range message
func (queue *Queue) RangeAssigned(from account.Address, to account.Address, start uint64, count uint64) {
	queue.sendJSON(RangeCommand, RangeItem{From: from, To: to, Start: start, Count: count})
}

// Burned - queue a burn message
func (queue *Queue) Burned(owner account.Address, id uint64) {
	queue.sendJSON(BurnCommand, BurnItem{Owner: owner, ID: id})
}

func (queue *Queue) sendJSON(command string, item interface{}) {
	data, err := json.Marshal(item)
	logger.PanicIfError("messagebus.sendJSON", err)
	queue.Send(command, data)
}
