// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - per-owner aggregate counters
//
// Records are created on first credit and never deleted.  There is no
// owner enumeration apart from the export used to persist the ledger.
package registry

import (
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
)

// Record - aggregate counters for one owner
type Record struct {
	Balance      uint64 `json:"balance"`
	NumberMinted uint64 `json:"numberMinted"`
	NumberBurned uint64 `json:"numberBurned"`
	Aux          uint64 `json:"aux"`
}

// Registry - owner → record
type Registry struct {
	records map[account.Address]*Record
	dirty   map[account.Address]struct{}
}

// New - empty registry
func New() *Registry {
	return &Registry{
		records: make(map[account.Address]*Record),
		dirty:   make(map[account.Address]struct{}),
	}
}

// Get - copy of the record, all zero if the owner has never been seen
func (r *Registry) Get(owner account.Address) Record {
	if record, ok := r.records[owner]; ok {
		return *record
	}
	return Record{}
}

// Credit - a mint of count items to owner
func (r *Registry) Credit(owner account.Address, count uint64) {
	record := r.fetch(owner)
	record.Balance += count
	record.NumberMinted += count
}

// Receive - count items transferred in to owner
func (r *Registry) Receive(owner account.Address, count uint64) {
	r.fetch(owner).Balance += count
}

// Debit - count items transferred away from owner
func (r *Registry) Debit(owner account.Address, count uint64) error {
	record, ok := r.records[owner]
	if !ok || record.Balance < count {
		return fault.ErrInsufficientBalance
	}
	record.Balance -= count
	r.dirty[owner] = struct{}{}
	return nil
}

// RecordBurn - one item owned by owner was burned
func (r *Registry) RecordBurn(owner account.Address) error {
	record, ok := r.records[owner]
	if !ok || 0 == record.Balance {
		return fault.ErrInsufficientBalance
	}
	record.Balance -= 1
	record.NumberBurned += 1
	r.dirty[owner] = struct{}{}
	return nil
}

// SetAux - set the opaque tag
func (r *Registry) SetAux(owner account.Address, aux uint64) {
	r.fetch(owner).Aux = aux
}

// Aux - read the opaque tag
func (r *Registry) Aux(owner account.Address) uint64 {
	return r.Get(owner).Aux
}

// Dirty - records changed since the last Clean
func (r *Registry) Dirty() map[account.Address]Record {
	changed := make(map[account.Address]Record, len(r.dirty))
	for owner := range r.dirty {
		changed[owner] = *r.records[owner]
	}
	return changed
}

// Clean - forget the changed set after it has been persisted
func (r *Registry) Clean() {
	r.dirty = make(map[account.Address]struct{})
}

// Import - restore a persisted record, does not mark it dirty
func (r *Registry) Import(owner account.Address, record Record) {
	stored := record
	r.records[owner] = &stored
}

// fetch or create, marks the record dirty
func (r *Registry) fetch(owner account.Address) *Record {
	record, ok := r.records[owner]
	if !ok {
		record = &Record{}
		r.records[owner] = record
	}
	r.dirty[owner] = struct{}{}
	return record
}
