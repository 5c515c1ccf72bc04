// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/runledger/account"
)

type mintResult struct {
	Owner    account.Address `json:"owner"`
	First    uint64          `json:"first"`
	Quantity uint64          `json:"quantity"`
}

func runMint(c *cli.Context) error {
	return mint(c, false)
}

func runMintConsecutive(c *cli.Context) error {
	return mint(c, true)
}

func mint(c *cli.Context, consecutive bool) error {

	m := c.App.Metadata["config"].(*metadata)

	to, err := checkAccount(c, "to")
	if nil != err {
		return err
	}
	quantity, err := checkValue(c, "quantity")
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "to: %s\n", to)
		fmt.Fprintf(m.e, "quantity: %d\n", quantity)
	}

	first := uint64(0)
	if consecutive {
		first, err = m.token.MintConsecutive(to, quantity)
	} else {
		first, err = m.token.Mint(to, quantity)
	}
	if nil != err {
		return err
	}
	m.save = true

	return printJson(m.w, mintResult{
		Owner:    to,
		First:    first,
		Quantity: quantity,
	})
}
