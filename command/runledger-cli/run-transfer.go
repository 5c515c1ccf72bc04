// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/ownership"
)

type transferResult struct {
	ID        uint64           `json:"id"`
	From      account.Address  `json:"from"`
	Ownership ownership.Anchor `json:"ownership"`
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(c, "caller")
	if nil != err {
		return err
	}
	from := caller
	if "" != strings.TrimSpace(c.String("from")) {
		from, err = checkAccount(c, "from")
		if nil != err {
			return err
		}
	}
	to, err := checkAccount(c, "to")
	if nil != err {
		return err
	}
	id, err := checkID(c, "id")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "from: %s\n", from)
		fmt.Fprintf(m.e, "to: %s\n", to)
		fmt.Fprintf(m.e, "id: %d\n", id)
	}

	if err := m.token.Transfer(caller, from, to, id); nil != err {
		return err
	}
	m.save = true

	return printJson(m.w, transferResult{
		ID:        id,
		From:      from,
		Ownership: m.token.ExplicitOwnershipOf(id),
	})
}

func runBurn(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := checkAccount(c, "caller")
	if nil != err {
		return err
	}
	id, err := checkID(c, "id")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "caller: %s\n", caller)
		fmt.Fprintf(m.e, "id: %d\n", id)
	}

	if err := m.token.Burn(caller, id); nil != err {
		return err
	}
	m.save = true

	return printJson(m.w, m.token.Summary())
}
