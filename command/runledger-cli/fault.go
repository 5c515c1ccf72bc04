// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/runledger/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidNumber   = fault.InvalidError("invalid number")
	ErrMissingArgument = fault.InvalidError("missing argument")
	ErrRequiredAccount = fault.InvalidError("account is required")
	ErrRequiredID      = fault.InvalidError("identifier is required")
	ErrRequiredValue   = fault.InvalidError("value is required")
)
