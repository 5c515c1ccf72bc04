// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/configuration"
	"github.com/bitmark-inc/runledger/messagebus"
	"github.com/bitmark-inc/runledger/publish"
	"github.com/bitmark-inc/runledger/storage"
	"github.com/bitmark-inc/runledger/token"
)

// read the configuration and open the ledger
func setup(c *cli.Context) error {

	m := &metadata{
		verbose: c.GlobalBool("verbose"),
		e:       c.App.ErrWriter,
		w:       c.App.Writer,
	}
	c.App.Metadata["config"] = m

	command := c.Args().Get(0)
	if _, ok := standalone[command]; ok {
		return nil
	}

	file := c.GlobalString("config")
	if m.verbose {
		fmt.Fprintf(m.e, "reading config file: %s\n", file)
	}

	config, err := configuration.GetConfiguration(file)
	if nil != err {
		return err
	}
	m.config = config

	if err := logger.Initialise(config.Logging); nil != err {
		return err
	}
	m.log = logger.New("main")
	m.log.Infof("command: %s", command)

	m.store, err = storage.Open(config.DatabaseFile(), storage.ReadWrite, logger.New("storage"))
	if nil != err {
		return err
	}

	options := token.Options{
		StartID: config.StartID,
		Query:   config.QueryOptions(),
	}

	if 0 != len(config.Publish.Broadcast) {
		queue := messagebus.New(messagebus.DefaultQueueSize, logger.New("messagebus"))
		m.broadcaster, err = publish.New(&config.Publish, queue, logger.New("publish"))
		if nil != err {
			return err
		}
		if err := m.broadcaster.Start(); nil != err {
			return err
		}
		options.Notifier = queue
	}

	m.token, err = token.Open(m.store, options)
	return err
}

// save any changes and release everything setup opened
func finish(c *cli.Context) error {
	m, ok := c.App.Metadata["config"].(*metadata)
	if !ok || nil == m.config {
		return nil
	}

	err := error(nil)
	if m.save && nil != m.token {
		if m.verbose {
			fmt.Fprintf(m.e, "saving: %s\n", m.config.DatabaseFile())
		}
		err = m.token.Save(m.store)
	}

	if nil != m.broadcaster {
		m.broadcaster.Stop()
		if err := publish.Finalise(); nil != err {
			m.log.Errorf("publish finalise error: %s", err)
		}
	}
	if nil != m.store {
		m.store.Close()
	}
	if nil != m.log {
		m.log.Info("finished")
	}
	logger.Finalise()
	return err
}
