// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"errors"
	"testing"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/messagebus"
)

type frame struct {
	data  string
	flags zmq.Flag
}

// records frames and fails the send numbered failAt
type recorder struct {
	frames []frame
	count  int
	failAt int
}

func (r *recorder) Send(data string, flags zmq.Flag) (int, error) {
	return r.SendBytes([]byte(data), flags)
}

func (r *recorder) SendBytes(data []byte, flags zmq.Flag) (int, error) {
	r.count += 1
	if r.count == r.failAt {
		return 0, errors.New("send failed")
	}
	r.frames = append(r.frames, frame{data: string(data), flags: flags})
	return len(data), nil
}

func TestProcessFrames(t *testing.T) {
	out := &recorder{}
	brdc := &Broadcaster{log: logger.New("testing"), out: out}

	brdc.process(&messagebus.Message{Command: "range", Parameters: [][]byte{[]byte("a"), []byte("b")}})
	brdc.process(&messagebus.Message{Command: "empty"})

	assert.Equal(t, []frame{
		{data: "range", flags: zmq.SNDMORE | zmq.DONTWAIT},
		{data: "a", flags: zmq.SNDMORE | zmq.DONTWAIT},
		{data: "b", flags: zmq.DONTWAIT},
		{data: "empty", flags: zmq.DONTWAIT},
	}, out.frames, "frames")
	assert.Equal(t, uint64(2), brdc.sent, "sent")
}

func TestProcessTerminatesFailedMultipart(t *testing.T) {
	out := &recorder{failAt: 2}
	brdc := &Broadcaster{log: logger.New("testing"), out: out}

	brdc.process(&messagebus.Message{Command: "transfer", Parameters: [][]byte{[]byte("x"), []byte("y")}})
	brdc.process(&messagebus.Message{Command: "burn", Parameters: [][]byte{[]byte("z")}})

	assert.Equal(t, []frame{
		{data: "transfer", flags: zmq.SNDMORE | zmq.DONTWAIT},
		{data: "", flags: 0},
		{data: "burn", flags: zmq.SNDMORE | zmq.DONTWAIT},
		{data: "z", flags: zmq.DONTWAIT},
	}, out.frames, "frames")
	assert.Equal(t, uint64(1), brdc.sent, "sent")
}
