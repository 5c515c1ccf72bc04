// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package approval - single item approvals and operators
//
// Approvals are held in memory only; a reloaded ledger starts with none.
package approval

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/ownership"
)

// Resolver - current state of an identifier
type Resolver interface {
	Resolve(id uint64) (ownership.Anchor, bool)
}

// Keeper - approvals for items and operators for owners
type Keeper struct {
	sync.RWMutex

	log      *logger.L
	resolver Resolver

	approved  map[uint64]account.Address
	operators map[account.Address]map[account.Address]struct{}
}

// New - create an empty keeper
func New(resolver Resolver, log *logger.L) *Keeper {
	return &Keeper{
		log:       log,
		resolver:  resolver,
		approved:  make(map[uint64]account.Address),
		operators: make(map[account.Address]map[account.Address]struct{}),
	}
}

func (k *Keeper) owner(id uint64) (account.Address, error) {
	a, ok := k.resolver.Resolve(id)
	if !ok || a.Burned {
		return account.Zero, fault.ErrNonexistentToken
	}
	return a.Owner, nil
}

// Approve - allow to to move id; the zero address clears the approval
func (k *Keeper) Approve(caller account.Address, to account.Address, id uint64) error {
	owner, err := k.owner(id)
	if nil != err {
		return err
	}

	k.Lock()
	defer k.Unlock()

	if caller != owner && !k.isOperator(owner, caller) {
		return fault.ErrApprovalCallerNotOwnerNorApproved
	}

	if to.IsZero() {
		delete(k.approved, id)
	} else {
		k.approved[id] = to
	}
	k.log.Debugf("approve: id: %d  to: %s", id, to)
	return nil
}

// SetApprovalForAll - allow or deny operator for all items of owner
func (k *Keeper) SetApprovalForAll(owner account.Address, operator account.Address, approved bool) {
	k.Lock()
	defer k.Unlock()

	ops, ok := k.operators[owner]
	if approved {
		if !ok {
			ops = make(map[account.Address]struct{})
			k.operators[owner] = ops
		}
		ops[operator] = struct{}{}
	} else if ok {
		delete(ops, operator)
		if 0 == len(ops) {
			delete(k.operators, owner)
		}
	}
	k.log.Debugf("operator: owner: %s  operator: %s  approved: %v", owner, operator, approved)
}

// GetApproved - the single item approval of a live id
func (k *Keeper) GetApproved(id uint64) (account.Address, error) {
	if _, err := k.owner(id); nil != err {
		return account.Zero, err
	}
	k.RLock()
	defer k.RUnlock()
	return k.approved[id], nil
}

// IsApprovedForAll - true if operator may move every item of owner
func (k *Keeper) IsApprovedForAll(owner account.Address, operator account.Address) bool {
	k.RLock()
	defer k.RUnlock()
	return k.isOperator(owner, operator)
}

// IsOwnerOrApproved - true if caller may move id
func (k *Keeper) IsOwnerOrApproved(id uint64, caller account.Address) bool {
	owner, err := k.owner(id)
	if nil != err {
		return false
	}
	if caller == owner {
		return true
	}

	k.RLock()
	defer k.RUnlock()

	if k.isOperator(owner, caller) {
		return true
	}
	approved, ok := k.approved[id]
	return ok && approved == caller
}

// ClearApproval - forget the single item approval of id
func (k *Keeper) ClearApproval(id uint64) {
	k.Lock()
	delete(k.approved, id)
	k.Unlock()
}

// must hold lock
func (k *Keeper) isOperator(owner account.Address, operator account.Address) bool {
	_, ok := k.operators[owner][operator]
	return ok
}
