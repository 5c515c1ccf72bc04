// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - owner identities
//
// An owner is identified by an ed25519 public key.  The text form is
// base58 of: version byte ⧺ key ⧺ first 4 bytes of SHA3-256 of the
// preceding bytes.
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/runledger/fault"
)

// miscellaneous constants
const (
	AddressLength  = ed25519.PublicKeySize
	checksumLength = 4
	addressVersion = 0x11
)

// Address - opaque owner identity
type Address [AddressLength]byte

// Zero - the null identity, never a valid recipient
var Zero Address

// FromPublicKey - make an address from an ed25519 public key
func FromPublicKey(key ed25519.PublicKey) (Address, error) {
	return FromBytes(key)
}

// FromBytes - make an address from a raw key
func FromBytes(b []byte) (Address, error) {
	a := Address{}
	if AddressLength != len(b) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], b)
	return a, nil
}

// FromBase58 - decode the text form of an address
func FromBase58(s string) (Address, error) {
	a := Address{}

	decoded, err := base58.Decode(s)
	if nil != err || 0 == len(decoded) {
		return a, fault.ErrCannotDecodeAccount
	}

	if 1+AddressLength+checksumLength != len(decoded) {
		return a, fault.ErrInvalidKeyLength
	}
	if addressVersion != decoded[0] {
		return a, fault.ErrInvalidAccountVersion
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.ErrChecksumMismatch
	}

	copy(a[:], decoded[1:checksumStart])
	return a, nil
}

// IsZero - true for the null identity
func (a Address) IsZero() bool {
	return Zero == a
}

// Bytes - raw key bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// String - base58 text form
func (a Address) String() string {
	buffer := make([]byte, 0, 1+AddressLength+checksumLength)
	buffer = append(buffer, addressVersion)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert to base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from base58 for JSON
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
