// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/runledger/account"
)

func checkAccount(c *cli.Context, name string) (account.Address, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return account.Zero, ErrRequiredAccount
	}
	return account.FromBase58(s)
}

func checkID(c *cli.Context, name string) (uint64, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return 0, ErrRequiredID
	}
	return parseNumber(s)
}

// optional value, ok is false if the flag was not given
func checkOptionalNumber(c *cli.Context, name string) (uint64, bool, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return 0, false, nil
	}
	n, err := parseNumber(s)
	return n, true, err
}

func checkValue(c *cli.Context, name string) (uint64, error) {
	n, ok, err := checkOptionalNumber(c, name)
	if nil != err {
		return 0, err
	}
	if !ok {
		return 0, ErrRequiredValue
	}
	return n, nil
}

// decimal, or hex with 0x prefix
func parseNumber(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if nil != err {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
