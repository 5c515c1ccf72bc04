// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/ownership"
)

type ownerResult struct {
	ID    uint64          `json:"id"`
	Owner account.Address `json:"owner"`
}

type balanceResult struct {
	Owner        account.Address `json:"owner"`
	Balance      uint64          `json:"balance"`
	NumberMinted uint64          `json:"numberMinted"`
	NumberBurned uint64          `json:"numberBurned"`
	Aux          uint64          `json:"aux"`
}

type tokensResult struct {
	Owner account.Address `json:"owner"`
	IDs   []uint64        `json:"ids"`
}

type ownershipResult struct {
	ID        uint64           `json:"id"`
	Explicit  bool             `json:"explicit"`
	Ownership ownership.Anchor `json:"ownership"`
}

func runOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkID(c, "id")
	if nil != err {
		return err
	}

	owner, err := m.token.OwnerOf(id)
	if nil != err {
		return err
	}

	return printJson(m.w, ownerResult{
		ID:    id,
		Owner: owner,
	})
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}

	return printJson(m.w, balanceOf(m, owner))
}

func balanceOf(m *metadata, owner account.Address) balanceResult {
	return balanceResult{
		Owner:        owner,
		Balance:      m.token.BalanceOf(owner),
		NumberMinted: m.token.NumberMinted(owner),
		NumberBurned: m.token.NumberBurned(owner),
		Aux:          m.token.Aux(owner),
	}
}

func runTokens(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	start, hasStart, err := checkOptionalNumber(c, "start")
	if nil != err {
		return err
	}
	stop, hasStop, err := checkOptionalNumber(c, "stop")
	if nil != err {
		return err
	}

	ids := []uint64(nil)
	if hasStart || hasStop {
		if !hasStop {
			stop = m.token.Summary().CurrentIndex
		}
		if m.verbose {
			fmt.Fprintf(m.e, "range: [%d, %d)\n", start, stop)
		}
		ids, err = m.token.TokensOfOwnerIn(owner, start, stop)
	} else {
		ids, err = m.token.TokensOfOwner(owner)
	}
	if nil != err {
		return err
	}

	return printJson(m.w, tokensResult{
		Owner: owner,
		IDs:   ids,
	})
}

func runOwnership(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 0 == c.NArg() {
		return ErrMissingArgument
	}

	ids := make([]uint64, c.NArg())
	for i, s := range c.Args() {
		id, err := parseNumber(s)
		if nil != err {
			return err
		}
		ids[i] = id
	}

	anchors := m.token.ExplicitOwnershipsOf(ids)

	result := make([]ownershipResult, len(ids))
	for i, id := range ids {
		_, explicit := m.token.OwnershipAt(id)
		result[i] = ownershipResult{
			ID:        id,
			Explicit:  explicit,
			Ownership: anchors[i],
		}
	}
	return printJson(m.w, result)
}

func runSupply(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	return printJson(m.w, m.token.Summary())
}
