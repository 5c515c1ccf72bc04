// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/runledger/fault"
)

const uint64ByteSize = 8

// structure of the packed record
const (
	balanceStart  = 0
	balanceFinish = balanceStart + uint64ByteSize

	mintedStart  = balanceFinish
	mintedFinish = mintedStart + uint64ByteSize

	burnedStart  = mintedFinish
	burnedFinish = burnedStart + uint64ByteSize

	auxStart  = burnedFinish
	auxFinish = auxStart + uint64ByteSize

	recordPackLength = auxFinish
)

// PackedRecord - packed data to store in database
type PackedRecord []byte

// Pack - pack a record to byte slice
func (r Record) Pack() PackedRecord {
	packed := make(PackedRecord, recordPackLength)
	binary.BigEndian.PutUint64(packed[balanceStart:balanceFinish], r.Balance)
	binary.BigEndian.PutUint64(packed[mintedStart:mintedFinish], r.NumberMinted)
	binary.BigEndian.PutUint64(packed[burnedStart:burnedFinish], r.NumberBurned)
	binary.BigEndian.PutUint64(packed[auxStart:auxFinish], r.Aux)
	return packed
}

// Unpack - unpack a stored record
func (packed PackedRecord) Unpack() (Record, error) {
	if recordPackLength != len(packed) {
		return Record{}, fault.ErrCorruptRecord
	}
	r := Record{
		Balance:      binary.BigEndian.Uint64(packed[balanceStart:balanceFinish]),
		NumberMinted: binary.BigEndian.Uint64(packed[mintedStart:mintedFinish]),
		NumberBurned: binary.BigEndian.Uint64(packed[burnedStart:burnedFinish]),
		Aux:          binary.BigEndian.Uint64(packed[auxStart:auxFinish]),
	}
	return r, nil
}
