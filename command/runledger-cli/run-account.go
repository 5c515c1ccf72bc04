// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/runledger/account"
)

type accountResult struct {
	Account    account.Address `json:"account"`
	PublicKey  string          `json:"publicKey"`
	PrivateKey string          `json:"privateKey,omitempty"`
}

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if public := c.String("public"); "" != public {
		key, err := hex.DecodeString(public)
		if nil != err {
			return err
		}
		a, err := account.FromPublicKey(key)
		if nil != err {
			return err
		}
		return printJson(m.w, accountResult{
			Account:   a,
			PublicKey: public,
		})
	}

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return err
	}

	a, err := account.FromPublicKey(publicKey)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "generated: %s\n", a)
	}

	return printJson(m.w, accountResult{
		Account:    a,
		PublicKey:  hex.EncodeToString(publicKey),
		PrivateKey: hex.EncodeToString(privateKey),
	})
}
