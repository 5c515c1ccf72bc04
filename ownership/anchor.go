// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"

	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
)

const (
	oneByteSize    = 1
	uint32ByteSize = 4
	uint64ByteSize = 8

	// extra data is limited to 24 bits
	ExtraDataMask = 0x00ffffff
)

// flag bits
const (
	flagBurned = 0x01
)

// structure of the packed anchor
const (
	ownerStart  = 0
	ownerFinish = ownerStart + account.AddressLength

	timestampStart  = ownerFinish
	timestampFinish = timestampStart + uint64ByteSize

	flagsStart  = timestampFinish
	flagsFinish = flagsStart + oneByteSize

	extraDataStart  = flagsFinish
	extraDataFinish = extraDataStart + uint32ByteSize

	anchorPackLength = extraDataFinish
)

// Anchor - explicit ownership record for the run starting at an identifier
type Anchor struct {
	Owner          account.Address `json:"owner"`
	StartTimestamp uint64          `json:"startTimestamp"`
	Burned         bool            `json:"burned"`
	ExtraData      uint32          `json:"extraData"`
}

// PackedAnchor - packed data to store in database
type PackedAnchor []byte

// Pack - pack an anchor to byte slice
func (a Anchor) Pack() PackedAnchor {
	packed := make(PackedAnchor, anchorPackLength)
	copy(packed[ownerStart:ownerFinish], a.Owner[:])
	binary.BigEndian.PutUint64(packed[timestampStart:timestampFinish], a.StartTimestamp)
	if a.Burned {
		packed[flagsStart] |= flagBurned
	}
	binary.BigEndian.PutUint32(packed[extraDataStart:extraDataFinish], a.ExtraData&ExtraDataMask)
	return packed
}

// Unpack - unpack a stored anchor
func (packed PackedAnchor) Unpack() (Anchor, error) {
	if anchorPackLength != len(packed) {
		return Anchor{}, fault.ErrCorruptRecord
	}
	flags := packed[flagsStart]
	if 0 != flags&^flagBurned {
		return Anchor{}, fault.ErrCorruptRecord
	}

	a := Anchor{
		StartTimestamp: binary.BigEndian.Uint64(packed[timestampStart:timestampFinish]),
		Burned:         0 != flags&flagBurned,
		ExtraData:      binary.BigEndian.Uint32(packed[extraDataStart:extraDataFinish]),
	}
	copy(a.Owner[:], packed[ownerStart:ownerFinish])
	return a, nil
}

// pack an identifier as a database key
func idKey(id uint64) []byte {
	key := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(key, id)
	return key
}
