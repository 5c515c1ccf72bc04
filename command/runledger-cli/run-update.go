// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/runledger/ownership"
)

func runInitialise(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c, "id")
	if nil != err {
		return err
	}

	if err := m.token.InitialiseAt(id); nil != err {
		return err
	}
	m.save = true

	a, _ := m.token.OwnershipAt(id)
	return printJson(m.w, a)
}

func runExtraData(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c, "id")
	if nil != err {
		return err
	}
	value, err := checkValue(c, "value")
	if nil != err {
		return err
	}
	if value > ownership.ExtraDataMask {
		return ErrInvalidNumber
	}

	if err := m.token.SetExtraDataAt(id, uint32(value)); nil != err {
		return err
	}
	m.save = true

	a, _ := m.token.OwnershipAt(id)
	return printJson(m.w, a)
}

func runAux(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	value, err := checkValue(c, "value")
	if nil != err {
		return err
	}

	m.token.SetAux(owner, value)
	m.save = true

	return printJson(m.w, balanceOf(m, owner))
}
