// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - a complete ownership ledger behind one lock
//
// mutations hold the ledger write lock for their whole duration so
// there is a single serialised stream of changes; queries hold the
// read lock and may run concurrently
package token

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/approval"
	"github.com/bitmark-inc/runledger/burn"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/mutation"
	"github.com/bitmark-inc/runledger/ownership"
	"github.com/bitmark-inc/runledger/query"
	"github.com/bitmark-inc/runledger/registry"
	"github.com/bitmark-inc/runledger/storage"
)

// Options - settings for a new or loaded ledger
type Options struct {
	StartID  uint64
	Query    query.Options
	Notifier mutation.Notifier

	// optional hooks, see mutation.Engine
	Clock     func() uint64
	ExtraData func(from account.Address, to account.Address, previous uint32) uint32
}

// Token - the composed ledger
type Token struct {
	log       *logger.L
	ledger    *ownership.Ledger
	approvals *approval.Keeper
	engine    *mutation.Engine
	burner    *burn.Extension
	query     *query.Layer
}

// New - an empty in-memory ledger
func New(options Options) *Token {
	l := ownership.New(options.StartID, registry.New(), logger.New("ledger"))
	return compose(l, options)
}

// Open - load the ledger from store, or create an empty one
//
// a saved ledger keeps its own start id
func Open(store *storage.Store, options Options) (*Token, error) {
	log := logger.New("ledger")

	l, err := ownership.Load(store, log)
	if fault.ErrNotInitialised == err {
		log.Infof("new ledger: start id: %d", options.StartID)
		return New(options), nil
	}
	if nil != err {
		return nil, err
	}

	if l.StartID() != options.StartID {
		log.Warnf("saved start id: %d  overrides configured: %d", l.StartID(), options.StartID)
	}
	return compose(l, options), nil
}

func compose(l *ownership.Ledger, options Options) *Token {
	keeper := approval.New(l, logger.New("approval"))
	engine := mutation.New(l, keeper, options.Notifier, logger.New("mutation"))
	if nil != options.Clock {
		engine.Clock = options.Clock
	}
	if nil != options.ExtraData {
		engine.ExtraData = options.ExtraData
	}

	return &Token{
		log:       logger.New("token"),
		ledger:    l,
		approvals: keeper,
		engine:    engine,
		burner:    burn.New(engine, logger.New("burn")),
		query:     query.New(l, options.Query, logger.New("query")),
	}
}

// Save - write all changes since the last save
func (t *Token) Save(store *storage.Store) error {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.ledger.Save(store)
}

// Mint - assign quantity new identifiers to to
func (t *Token) Mint(to account.Address, quantity uint64) (uint64, error) {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.engine.Mint(to, quantity)
}

// MintConsecutive - assign quantity new identifiers with one notification
func (t *Token) MintConsecutive(to account.Address, quantity uint64) (uint64, error) {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.engine.MintConsecutive(to, quantity)
}

// Transfer - move id from from to to on behalf of caller
func (t *Token) Transfer(caller account.Address, from account.Address, to account.Address, id uint64) error {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.engine.Transfer(caller, from, to, id)
}

// Burn - tombstone id on behalf of caller
func (t *Token) Burn(caller account.Address, id uint64) error {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.burner.Burn(caller, id)
}

// Approve - allow to to move id
func (t *Token) Approve(caller account.Address, to account.Address, id uint64) error {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.approvals.Approve(caller, to, id)
}

// SetApprovalForAll - allow or deny operator for all items of owner
func (t *Token) SetApprovalForAll(owner account.Address, operator account.Address, approved bool) {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	t.approvals.SetApprovalForAll(owner, operator, approved)
}

// SetAux - set the opaque tag of owner
func (t *Token) SetAux(owner account.Address, aux uint64) {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	t.ledger.Registry().SetAux(owner, aux)
	t.ledger.MarkChanged()
}

// SetExtraDataAt - change the extra data of an existing anchor
func (t *Token) SetExtraDataAt(id uint64, extraData uint32) error {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.ledger.SetExtraDataAt(id, extraData)
}

// InitialiseAt - materialise the resolved state of id as an anchor
func (t *Token) InitialiseAt(id uint64) error {
	t.ledger.Lock()
	defer t.ledger.Unlock()
	return t.ledger.InitialiseAt(id)
}

// GetApproved - single item approval of id
func (t *Token) GetApproved(id uint64) (account.Address, error) {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.approvals.GetApproved(id)
}

// IsApprovedForAll - true if operator may move every item of owner
func (t *Token) IsApprovedForAll(owner account.Address, operator account.Address) bool {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.approvals.IsApprovedForAll(owner, operator)
}

// Resolve - state of id
func (t *Token) Resolve(id uint64) (ownership.Anchor, bool) {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.Resolve(id)
}

// Exists - id assigned and not burned
func (t *Token) Exists(id uint64) bool {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.Exists(id)
}

// OwnerOf - owner of a live id
func (t *Token) OwnerOf(id uint64) (account.Address, error) {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.OwnerOf(id)
}

// TokensOfOwner - all live identifiers held by owner
func (t *Token) TokensOfOwner(owner account.Address) ([]uint64, error) {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.TokensOfOwner(owner)
}

// TokensOfOwnerIn - live identifiers held by owner in [start, stop)
func (t *Token) TokensOfOwnerIn(owner account.Address, start uint64, stop uint64) ([]uint64, error) {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.TokensOfOwnerIn(owner, start, stop)
}

// ExplicitOwnershipOf - externally visible ownership of id
func (t *Token) ExplicitOwnershipOf(id uint64) ownership.Anchor {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.ExplicitOwnershipOf(id)
}

// ExplicitOwnershipsOf - ExplicitOwnershipOf for each id
func (t *Token) ExplicitOwnershipsOf(ids []uint64) []ownership.Anchor {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.ExplicitOwnershipsOf(ids)
}

// OwnershipAt - raw anchor at id
func (t *Token) OwnershipAt(id uint64) (ownership.Anchor, bool) {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.OwnershipAt(id)
}

// Summary - ledger totals
type Summary struct {
	StartID      uint64          `json:"startId"`
	CurrentIndex uint64          `json:"currentIndex"`
	TotalMinted  uint64          `json:"totalMinted"`
	TotalBurned  uint64          `json:"totalBurned"`
	TotalSupply  uint64          `json:"totalSupply"`
	Stats        ownership.Stats `json:"stats"`
}

// Summary - consistent snapshot of the totals
func (t *Token) Summary() Summary {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return Summary{
		StartID:      t.ledger.StartID(),
		CurrentIndex: t.ledger.CurrentIndex(),
		TotalMinted:  t.query.TotalMinted(),
		TotalBurned:  t.query.TotalBurned(),
		TotalSupply:  t.query.TotalSupply(),
		Stats:        t.ledger.Stats(),
	}
}

// TotalSupply - identifiers assigned and not burned
func (t *Token) TotalSupply() uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.TotalSupply()
}

// TotalMinted - identifiers ever assigned
func (t *Token) TotalMinted() uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.TotalMinted()
}

// TotalBurned - identifiers burned
func (t *Token) TotalBurned() uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.TotalBurned()
}

// BalanceOf - live items held by owner
func (t *Token) BalanceOf(owner account.Address) uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.BalanceOf(owner)
}

// NumberMinted - items ever minted to owner
func (t *Token) NumberMinted(owner account.Address) uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.NumberMinted(owner)
}

// NumberBurned - items burned while held by owner
func (t *Token) NumberBurned(owner account.Address) uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.NumberBurned(owner)
}

// Aux - opaque tag of owner
func (t *Token) Aux(owner account.Address) uint64 {
	t.ledger.RLock()
	defer t.ledger.RUnlock()
	return t.query.Aux(owner)
}
