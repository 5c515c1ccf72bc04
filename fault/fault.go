// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised                = ExistsError("already initialised")
	ErrApprovalCallerNotOwnerNorApproved = InvalidError("approval caller is not owner nor approved")
	ErrCannotDecodeAccount               = InvalidError("cannot decode account")
	ErrChecksumMismatch                  = InvalidError("checksum mismatch")
	ErrConsecutiveQuantity               = InvalidError("consecutive mint quantity exceeds limit")
	ErrCorruptRecord                     = RecordError("corrupt record")
	ErrDatabaseVersion                   = RecordError("incompatible database version")
	ErrInsufficientBalance               = RecordError("insufficient balance")
	ErrIdentifierOverflow                = InvalidError("identifier space exhausted")
	ErrInvalidAccountVersion             = InvalidError("invalid account version")
	ErrInvalidKeyLength                  = InvalidError("invalid key length")
	ErrInvalidQueryRange                 = InvalidError("invalid query range")
	ErrInvalidRecipient                  = InvalidError("invalid recipient")
	ErrInvalidStructPointer              = InvalidError("invalid struct pointer")
	ErrMissingConfiguration              = NotFoundError("missing configuration")
	ErrNonexistentToken                  = NotFoundError("nonexistent token")
	ErrNotInitialised                    = NotFoundError("not initialised")
	ErrNotOwnerNorApproved               = InvalidError("caller is not owner nor approved")
	ErrOwnershipNotInitialised           = NotFoundError("ownership not initialised")
	ErrRateLimiting                      = ProcessError("rate limiting")
	ErrReadOnly                          = ProcessError("database is read only")
	ErrTransactionInUse                  = ProcessError("transaction already in use")
	ErrTransferFromIncorrectOwner        = InvalidError("transfer from incorrect owner")
	ErrZeroQuantity                      = InvalidError("zero quantity")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
