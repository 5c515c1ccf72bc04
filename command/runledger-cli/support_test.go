// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/runledger/account"
)

func TestParseNumber(t *testing.T) {
	items := []struct {
		s        string
		expected uint64
		err      error
	}{
		{"0", 0, nil},
		{"42", 42, nil},
		{"0x10", 16, nil},
		{"18446744073709551615", 18446744073709551615, nil},
		{"18446744073709551616", 0, ErrInvalidNumber},
		{"-1", 0, ErrInvalidNumber},
		{"ten", 0, ErrInvalidNumber},
	}
	for i, item := range items {
		n, err := parseNumber(item.s)
		assert.Equal(t, item.err, err, "%d: error", i)
		assert.Equal(t, item.expected, n, "%d: value", i)
	}
}

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("to", "", "")
	set.String("id", "", "")
	set.String("stop", "", "")
	if err := set.Parse(args); nil != err {
		t.Fatalf("parse error: %s", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestCheckFlags(t *testing.T) {
	a := account.Address{0x12, 0x34}

	c := newContext(t, "-to", a.String(), "-id", "7")

	to, err := checkAccount(c, "to")
	assert.Nil(t, err, "account")
	assert.Equal(t, a, to, "account value")

	id, err := checkID(c, "id")
	assert.Nil(t, err, "id")
	assert.Equal(t, uint64(7), id, "id value")

	_, ok, err := checkOptionalNumber(c, "stop")
	assert.Nil(t, err, "optional")
	assert.False(t, ok, "optional present")

	c = newContext(t)
	_, err = checkAccount(c, "to")
	assert.Equal(t, ErrRequiredAccount, err, "missing account")
	_, err = checkID(c, "id")
	assert.Equal(t, ErrRequiredID, err, "missing id")
}

func TestAccountCommand(t *testing.T) {
	w := &bytes.Buffer{}
	app := cli.NewApp()
	app.Writer = w
	app.Metadata = map[string]interface{}{
		"config": &metadata{w: w, e: w},
	}

	set := flag.NewFlagSet("account", flag.ContinueOnError)
	set.String("public", "", "")
	assert.Nil(t, set.Parse([]string{"-public", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"}), "parse")

	err := runAccount(cli.NewContext(app, set, nil))
	assert.Nil(t, err, "run account")
	assert.Contains(t, w.String(), `"publicKey": "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"`, "output")
}
