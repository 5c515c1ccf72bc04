// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/configuration"
	"github.com/bitmark-inc/runledger/publish"
	"github.com/bitmark-inc/runledger/storage"
	"github.com/bitmark-inc/runledger/token"
)

type metadata struct {
	config      *configuration.Configuration
	store       *storage.Store
	token       *token.Token
	broadcaster *publish.Broadcaster
	log         *logger.L
	save        bool
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that do not open the ledger
var standalone = map[string]struct{}{
	"":        {},
	"account": {},
	"help":    {},
	"h":       {},
	"version": {},
}

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "runledger-cli"
	app.Usage = "sequential identity ownership ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "runledger.conf",
			Usage: " Lua configuration `FILE`",
		},
	}

	callerFlag := cli.StringFlag{
		Name:  "caller, C",
		Value: "",
		Usage: "*account performing the operation `ACCOUNT`",
	}
	idFlag := cli.StringFlag{
		Name:  "id, i",
		Value: "",
		Usage: "*identifier `ID`",
	}
	quantityFlag := cli.StringFlag{
		Name:  "quantity, q",
		Value: "1",
		Usage: " quantity to mint `COUNT`",
	}
	toFlag := cli.StringFlag{
		Name:  "to, t",
		Value: "",
		Usage: "*receiving account `ACCOUNT`",
	}
	ownerFlag := cli.StringFlag{
		Name:  "owner, o",
		Value: "",
		Usage: "*owner account `ACCOUNT`",
	}

	app.Commands = []cli.Command{
		{
			Name:      "account",
			Usage:     "generate a new account key pair",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "public, p",
					Value: "",
					Usage: " decode an existing account from a public key `HEX`",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "mint",
			Usage:     "mint new identifiers, one notification each",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{toFlag, quantityFlag},
			Action:    runMint,
		},
		{
			Name:      "mint-consecutive",
			Usage:     "mint new identifiers with a single range notification",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{toFlag, quantityFlag},
			Action:    runMintConsecutive,
		},
		{
			Name:      "transfer",
			Usage:     "transfer an identifier to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				callerFlag,
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: " current owner `ACCOUNT` [default caller]",
				},
				toFlag,
				idFlag,
			},
			Action: runTransfer,
		},
		{
			Name:      "burn",
			Usage:     "burn an identifier",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{callerFlag, idFlag},
			Action:    runBurn,
		},
		{
			Name:      "initialise",
			Usage:     "store the resolved ownership of an identifier explicitly",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runInitialise,
		},
		{
			Name:      "extra-data",
			Usage:     "set the extra data of an explicit ownership",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				idFlag,
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: "*24 bit extra data `VALUE`",
				},
			},
			Action: runExtraData,
		},
		{
			Name:      "aux",
			Usage:     "set the auxiliary data of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: "*64 bit auxiliary data `VALUE`",
				},
			},
			Action: runAux,
		},
		{
			Name:      "owner",
			Usage:     "show the owner of an identifier",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runOwner,
		},
		{
			Name:      "balance",
			Usage:     "show the counters of an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{ownerFlag},
			Action:    runBalance,
		},
		{
			Name:      "tokens",
			Usage:     "list identifiers of an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				ownerFlag,
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: " first identifier of the range `ID`",
				},
				cli.StringFlag{
					Name:  "stop, S",
					Value: "",
					Usage: " identifier after the range `ID`",
				},
			},
			Action: runTokens,
		},
		{
			Name:      "ownership",
			Usage:     "show the explicit ownership of identifiers",
			ArgsUsage: "ID...",
			Action:    runOwnership,
		},
		{
			Name:   "supply",
			Usage:  "show ledger totals",
			Action: runSupply,
		},
		{
			Name:  "version",
			Usage: "display runledger-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintln(c.App.Writer, version)
				return nil
			},
		},
	}

	app.Before = setup
	app.After = finish

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
