// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queue of ledger change notifications
//
// each message is a command and a list of parameters:
//
//   "transfer"  JSON {from, to, id}
//   "range"     JSON {from, to, start, count}
//   "burn"      JSON {owner, id}
//
// a queue that is full drops the message rather than block the ledger
package messagebus
