// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast ledger changes on a ZeroMQ PUB socket
//
// every message is sent as a multipart: command frame then one frame
// per parameter
package publish

import (
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/background"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/messagebus"
)

// time a closed socket keeps delivering outstanding messages
const lingerTime = 2 * time.Second

// the sending half of a socket
type sender interface {
	Send(string, zmq.Flag) (int, error)
	SendBytes([]byte, zmq.Flag) (int, error)
}

// Configuration - a block of configuration data
type Configuration struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// Broadcaster - drains a message queue onto a PUB socket
type Broadcaster struct {
	sync.Mutex

	log    *logger.L
	socket *zmq.Socket
	out    sender
	queue  <-chan messagebus.Message

	background *background.T
	sent       uint64
}

// New - bind a PUB socket to every broadcast address
func New(configuration *Configuration, queue *messagebus.Queue, log *logger.L) (*Broadcaster, error) {
	if 0 == len(configuration.Broadcast) {
		return nil, fault.ErrMissingConfiguration
	}

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return nil, err
	}
	socket.SetLinger(lingerTime)

	for _, address := range configuration.Broadcast {
		log.Infof("bind to: %q", address)
		if err := socket.Bind(address); nil != err {
			log.Errorf("bind: %q  error: %s", address, err)
			socket.Close()
			return nil, err
		}
	}

	return &Broadcaster{
		log:    log,
		socket: socket,
		out:    socket,
		queue:  queue.Chan(),
	}, nil
}

// Start - run the broadcaster in the background
func (brdc *Broadcaster) Start() error {
	brdc.Lock()
	defer brdc.Unlock()

	if nil != brdc.background {
		return fault.ErrAlreadyInitialised
	}
	if nil == brdc.socket {
		return fault.ErrNotInitialised
	}
	brdc.background = background.Start(background.Processes{brdc}, nil)
	return nil
}

// Stop - stop the background and close the socket
func (brdc *Broadcaster) Stop() {
	brdc.Lock()
	defer brdc.Unlock()

	if nil != brdc.background {
		brdc.background.Stop()
		brdc.background = nil
	} else if nil != brdc.socket {
		brdc.socket.Close()
	}
	brdc.socket = nil
	brdc.log.Infof("stopped, sent: %d", brdc.sent)
}

// Run - send each queued message until shutdown
//
// messages already queued when shutdown is signalled are still sent
func (brdc *Broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			brdc.drain()
			break loop
		case item := <-brdc.queue:
			log.Debugf("sending: %s  parameters: %d", item.Command, len(item.Parameters))
			brdc.process(&item)
		}
	}
	brdc.socket.Close()
	log.Info("finished")
}

func (brdc *Broadcaster) drain() {
	n := 0
	for {
		select {
		case item := <-brdc.queue:
			brdc.process(&item)
			n += 1
		default:
			brdc.log.Debugf("drained: %d", n)
			return
		}
	}
}

func (brdc *Broadcaster) process(item *messagebus.Message) {
	flags := zmq.SNDMORE | zmq.DONTWAIT
	if 0 == len(item.Parameters) {
		flags = zmq.DONTWAIT
	}
	if _, err := brdc.out.Send(item.Command, flags); nil != err {
		brdc.log.Errorf("send: %s  error: %s", item.Command, err)
		return
	}

	last := len(item.Parameters) - 1
	for i, p := range item.Parameters {
		flags := zmq.SNDMORE | zmq.DONTWAIT
		if i == last {
			flags = zmq.DONTWAIT
		}
		if _, err := brdc.out.SendBytes(p, flags); nil != err {
			brdc.log.Errorf("send: %s  parameter: %d  error: %s", item.Command, i, err)

			// a multipart already started must be terminated or the
			// next message would be appended to it
			if _, err := brdc.out.SendBytes([]byte{}, 0); nil != err {
				brdc.log.Criticalf("send: %s  terminate error: %s", item.Command, err)
			}
			return
		}
	}
	brdc.sent += 1
}

// Finalise - wait for closed sockets to deliver outstanding messages
//
// at most the linger time; call once after every Broadcaster is stopped
func Finalise() error {
	return zmq.Term()
}
