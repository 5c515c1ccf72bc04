// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"math"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/counter"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/registry"
)

// Ledger - sparse anchor store and backward scan resolver
//
// writers must hold Lock and readers RLock; the methods themselves do
// not lock so that mutations can compose them
type Ledger struct {
	sync.RWMutex

	log *logger.L

	startID      uint64
	currentIndex uint64
	totalBurned  uint64

	anchors  map[uint64]Anchor
	registry *registry.Registry

	// changes since the last save
	dirty      map[uint64]struct{}
	stateDirty bool

	// incremented by every write
	version uint64

	anchorWrites counter.Counter
	scanSteps    counter.Counter
}

// Stats - resolver statistics
type Stats struct {
	Anchors      int    `json:"anchors"`
	AnchorWrites uint64 `json:"anchorWrites"`
	ScanSteps    uint64 `json:"scanSteps"`
}

// New - empty ledger whose first identifier is startID
func New(startID uint64, r *registry.Registry, log *logger.L) *Ledger {
	return &Ledger{
		log:          log,
		startID:      startID,
		currentIndex: startID,
		anchors:      make(map[uint64]Anchor),
		registry:     r,
		dirty:        make(map[uint64]struct{}),
		stateDirty:   true,
	}
}

// Registry - the address registry kept with this ledger
func (l *Ledger) Registry() *registry.Registry {
	return l.registry
}

// StartID - first valid identifier
func (l *Ledger) StartID() uint64 {
	return l.startID
}

// CurrentIndex - next identifier to be assigned
func (l *Ledger) CurrentIndex() uint64 {
	return l.currentIndex
}

// TotalMinted - identifiers ever assigned
func (l *Ledger) TotalMinted() uint64 {
	return l.currentIndex - l.startID
}

// TotalBurned - identifiers tombstoned
func (l *Ledger) TotalBurned() uint64 {
	return l.totalBurned
}

// Version - changes after every write
func (l *Ledger) Version() uint64 {
	return l.version
}

// Stats - snapshot of the statistics
func (l *Ledger) Stats() Stats {
	return Stats{
		Anchors:      len(l.anchors),
		AnchorWrites: l.anchorWrites.Uint64(),
		ScanSteps:    l.scanSteps.Uint64(),
	}
}

// InRange - true if id has been assigned
func (l *Ledger) InRange(id uint64) bool {
	return id >= l.startID && id < l.currentIndex
}

// CanAdvance - check that quantity more identifiers fit
func (l *Ledger) CanAdvance(quantity uint64) error {
	if quantity > math.MaxUint64-l.currentIndex {
		return fault.ErrIdentifierOverflow
	}
	return nil
}

// Advance - assign quantity identifiers, returns the first
//
// the caller must already have checked CanAdvance
func (l *Ledger) Advance(quantity uint64) uint64 {
	first := l.currentIndex
	l.currentIndex += quantity
	l.stateDirty = true
	l.version += 1
	return first
}

// AddBurned - count one more tombstone
func (l *Ledger) AddBurned() {
	l.totalBurned += 1
	l.stateDirty = true
	l.version += 1
}

// At - the anchor physically stored at id, if any
func (l *Ledger) At(id uint64) (Anchor, bool) {
	a, ok := l.anchors[id]
	return a, ok
}

// Resolve - current state of id
//
// scans backward from id to the first present anchor; the run start of
// every assigned identifier is anchored so the scan cannot pass startID
func (l *Ledger) Resolve(id uint64) (Anchor, bool) {
	if !l.InRange(id) {
		return Anchor{}, false
	}

	steps := uint64(0)
	defer func() {
		l.scanSteps.Add(steps)
	}()

	for curr := id; ; curr -= 1 {
		if a, ok := l.anchors[curr]; ok {
			return a, true
		}
		steps += 1
		if curr == l.startID {
			l.log.Criticalf("resolve: id: %d  no anchor down to start id: %d", id, l.startID)
			logger.Panic("ownership.Resolve: anchor database corrupt")
		}
	}
}

// ExistsAndLive - assigned and not burned
func (l *Ledger) ExistsAndLive(id uint64) bool {
	a, ok := l.Resolve(id)
	return ok && !a.Burned
}

// Write - set the anchor at id unconditionally
func (l *Ledger) Write(id uint64, a Anchor) {
	a.ExtraData &= ExtraDataMask
	l.anchors[id] = a
	l.dirty[id] = struct{}{}
	l.version += 1
	l.anchorWrites.Increment()
}

// Replace - overwrite the anchor at id preserving the state of id+1
//
// prior is the state id resolved to before this mutation; if id+1 has
// been assigned and inherits from id or earlier it is anchored with
// prior first
func (l *Ledger) Replace(id uint64, prior Anchor, next Anchor) {
	successor := id + 1
	if successor < l.currentIndex {
		if _, ok := l.anchors[successor]; !ok {
			l.Write(successor, prior)
		}
	}
	l.Write(id, next)
}

// InitialiseAt - store the resolved state of id as an explicit anchor
func (l *Ledger) InitialiseAt(id uint64) error {
	if _, ok := l.anchors[id]; ok {
		return nil
	}
	a, ok := l.Resolve(id)
	if !ok || a.Burned {
		return fault.ErrNonexistentToken
	}
	l.Write(id, a)
	return nil
}

// SetExtraDataAt - change the extra data of an existing anchor
func (l *Ledger) SetExtraDataAt(id uint64, extraData uint32) error {
	a, ok := l.anchors[id]
	if !ok {
		return fault.ErrOwnershipNotInitialised
	}
	a.ExtraData = extraData
	l.Write(id, a)
	return nil
}

// MarkChanged - registry updates count as a ledger change
func (l *Ledger) MarkChanged() {
	l.version += 1
}
