// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger store
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ⧺       = concatenation of byte data
// 3. id      = token identifier as big endian uint64 (8 bytes)
// 4. owner   = account address (32 byte public key)
// 5. counts  = big endian uint64 (8 bytes each)
//
// Anchors:
//
//   A ⧺ id          - explicit ownership record
//                     data: owner ⧺ start timestamp ⧺ flags ⧺ extra data
//
// Address records:
//
//   R ⧺ owner       - aggregate counters
//                     data: balance ⧺ minted ⧺ burned ⧺ aux
//
// Ledger state:
//
//   S ⧺ "ledger"    - data: start id ⧺ current index ⧺ total burned
//
// All pools belonging to one ledger are written in a single batch so
// that the anchors are never persisted without the matching counters.
package storage
