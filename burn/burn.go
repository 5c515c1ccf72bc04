// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package burn - tombstoning of identifiers
//
// A burned identifier keeps its last owner and is never reassigned:
//
//   unassigned → live → (live …) → burned
//
package burn

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/mutation"
	"github.com/bitmark-inc/runledger/ownership"
)

// Extension - burn operations composed over a mutation engine
type Extension struct {
	log    *logger.L
	engine *mutation.Engine
}

// New - create a burn extension
func New(engine *mutation.Engine, log *logger.L) *Extension {
	return &Extension{
		log:    log,
		engine: engine,
	}
}

// Burn - tombstone id on behalf of caller
//
// the caller must hold the ledger write lock
func (b *Extension) Burn(caller account.Address, id uint64) error {
	prior, err := b.engine.Authorise(caller, id)
	if nil != err {
		return err
	}

	owner := prior.Owner
	l := b.engine.Ledger()

	b.engine.ClearApproval(id)

	if err := l.Registry().RecordBurn(owner); nil != err {
		b.log.Criticalf("burn: id: %d  owner: %s  registry error: %s", id, owner, err)
		logger.Panicf("burn.Burn: registry out of step with ledger: %s", err)
	}

	l.Replace(id, prior, ownership.Anchor{
		Owner:          owner,
		StartTimestamp: b.engine.Now(),
		Burned:         true,
		ExtraData:      b.engine.NextExtraData(owner, account.Zero, prior.ExtraData),
	})
	l.AddBurned()

	n := b.engine.Notifier()
	n.Burned(owner, id)
	n.Transferred(owner, account.Zero, id)

	b.log.Infof("burn: id: %d  owner: %s", id, owner)
	return nil
}

// TotalBurned - identifiers burned so far
func (b *Extension) TotalBurned() uint64 {
	return b.engine.Ledger().TotalBurned()
}

// TotalSupply - identifiers assigned and not burned
func (b *Extension) TotalSupply() uint64 {
	l := b.engine.Ledger()
	return l.TotalMinted() - l.TotalBurned()
}
