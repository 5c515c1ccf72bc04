// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mutation

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/ownership"
)

// MaximumConsecutiveBatch - largest quantity for a single range notification
const MaximumConsecutiveBatch = 5000

// Authoriser - access control consulted before a move
type Authoriser interface {
	IsOwnerOrApproved(id uint64, caller account.Address) bool
	ClearApproval(id uint64)
}

// Notifier - receives one call per state change, after it is applied
type Notifier interface {
	Transferred(from account.Address, to account.Address, id uint64)
	RangeAssigned(from account.Address, to account.Address, start uint64, count uint64)
	Burned(owner account.Address, id uint64)
}

// Engine - mint and transfer over an ownership ledger
//
// no method takes the ledger lock; the caller must hold it for writing
type Engine struct {
	log        *logger.L
	ledger     *ownership.Ledger
	authoriser Authoriser
	notifier   Notifier

	// seconds stamped into each written anchor
	Clock func() uint64

	// extra data for the anchor written by a move, previous is the
	// value resolved before the move (zero for a mint)
	ExtraData func(from account.Address, to account.Address, previous uint32) uint32
}

// New - create an engine
//
// a nil notifier discards all notifications
func New(ledger *ownership.Ledger, authoriser Authoriser, notifier Notifier, log *logger.L) *Engine {
	if nil == notifier {
		notifier = discard{}
	}
	return &Engine{
		log:        log,
		ledger:     ledger,
		authoriser: authoriser,
		notifier:   notifier,
		Clock:      unixNow,
		ExtraData:  inherit,
	}
}

func unixNow() uint64 {
	return uint64(time.Now().Unix())
}

func inherit(from account.Address, to account.Address, previous uint32) uint32 {
	return previous
}

// Ledger - the ledger being mutated
func (e *Engine) Ledger() *ownership.Ledger {
	return e.ledger
}

// Notifier - destination of change notifications
func (e *Engine) Notifier() Notifier {
	return e.notifier
}

// Now - current timestamp from the clock hook
func (e *Engine) Now() uint64 {
	return e.Clock()
}

// NextExtraData - extra data for an anchor written by a move
func (e *Engine) NextExtraData(from account.Address, to account.Address, previous uint32) uint32 {
	return e.ExtraData(from, to, previous) & ownership.ExtraDataMask
}

// ClearApproval - drop any single-item approval of id
func (e *Engine) ClearApproval(id uint64) {
	if nil != e.authoriser {
		e.authoriser.ClearApproval(id)
	}
}

// Mint - assign quantity new identifiers to to, one notification per identifier
func (e *Engine) Mint(to account.Address, quantity uint64) (uint64, error) {
	first, err := e.assign(to, quantity)
	if nil != err {
		return 0, err
	}

	for id := first; id < first+quantity; id += 1 {
		e.notifier.Transferred(account.Zero, to, id)
	}

	e.log.Infof("mint: to: %s  first: %d  quantity: %d", to, first, quantity)
	return first, nil
}

// MintConsecutive - as Mint but with a single range notification
func (e *Engine) MintConsecutive(to account.Address, quantity uint64) (uint64, error) {
	if quantity > MaximumConsecutiveBatch {
		return 0, fault.ErrConsecutiveQuantity
	}

	first, err := e.assign(to, quantity)
	if nil != err {
		return 0, err
	}

	e.notifier.RangeAssigned(account.Zero, to, first, quantity)

	e.log.Infof("mint consecutive: to: %s  first: %d  quantity: %d", to, first, quantity)
	return first, nil
}

// one anchor for the whole run
func (e *Engine) assign(to account.Address, quantity uint64) (uint64, error) {
	if to.IsZero() {
		return 0, fault.ErrInvalidRecipient
	}
	if 0 == quantity {
		return 0, fault.ErrZeroQuantity
	}
	if err := e.ledger.CanAdvance(quantity); nil != err {
		return 0, err
	}

	first := e.ledger.CurrentIndex()
	e.ledger.Write(first, ownership.Anchor{
		Owner:          to,
		StartTimestamp: e.Now(),
		ExtraData:      e.NextExtraData(account.Zero, to, 0),
	})
	e.ledger.Registry().Credit(to, quantity)
	e.ledger.Advance(quantity)

	return first, nil
}

// Authorise - the live state of id, if caller may move it
func (e *Engine) Authorise(caller account.Address, id uint64) (ownership.Anchor, error) {
	prior, err := e.live(id)
	if nil != err {
		return ownership.Anchor{}, err
	}
	if !e.authorised(prior, caller, id) {
		return ownership.Anchor{}, fault.ErrNotOwnerNorApproved
	}
	return prior, nil
}

// Transfer - move id from from to to on behalf of caller
func (e *Engine) Transfer(caller account.Address, from account.Address, to account.Address, id uint64) error {
	prior, err := e.live(id)
	if nil != err {
		return err
	}
	if prior.Owner != from {
		return fault.ErrTransferFromIncorrectOwner
	}
	if !e.authorised(prior, caller, id) {
		return fault.ErrNotOwnerNorApproved
	}
	if to.IsZero() {
		return fault.ErrInvalidRecipient
	}

	// all checks passed, nothing below can fail
	e.ClearApproval(id)

	r := e.ledger.Registry()
	if err := r.Debit(from, 1); nil != err {
		e.log.Criticalf("transfer: id: %d  from: %s  debit error: %s", id, from, err)
		logger.Panicf("mutation.Transfer: registry out of step with ledger: %s", err)
	}
	r.Receive(to, 1)

	e.ledger.Replace(id, prior, ownership.Anchor{
		Owner:          to,
		StartTimestamp: e.Now(),
		ExtraData:      e.NextExtraData(from, to, prior.ExtraData),
	})

	e.notifier.Transferred(from, to, id)

	e.log.Infof("transfer: id: %d  from: %s  to: %s", id, from, to)
	return nil
}

func (e *Engine) live(id uint64) (ownership.Anchor, error) {
	prior, ok := e.ledger.Resolve(id)
	if !ok || prior.Burned {
		return ownership.Anchor{}, fault.ErrNonexistentToken
	}
	return prior, nil
}

func (e *Engine) authorised(prior ownership.Anchor, caller account.Address, id uint64) bool {
	if caller == prior.Owner {
		return true
	}
	return nil != e.authoriser && e.authoriser.IsOwnerOrApproved(id, caller)
}

type discard struct{}

func (discard) Transferred(from account.Address, to account.Address, id uint64) {}

func (discard) RangeAssigned(from account.Address, to account.Address, start uint64, count uint64) {
}

func (discard) Burned(owner account.Address, id uint64) {}
