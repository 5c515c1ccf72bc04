// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token_test

import (
	"math/rand"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/ownership"
	"github.com/bitmark-inc/runledger/storage"
	"github.com/bitmark-inc/runledger/token"
)

func options(startID uint64) token.Options {
	return token.Options{
		StartID: startID,
		Clock: func() uint64 {
			return fixedTime
		},
	}
}

// per identifier state with no inheritance
type model struct {
	owner        map[uint64]account.Address
	burned       map[uint64]bool
	numberMinted map[account.Address]uint64
	numberBurned map[account.Address]uint64
	totalBurned  uint64
	next         uint64
}

func (m *model) tokensOf(owner account.Address) []uint64 {
	ids := []uint64{}
	for id := uint64(0); id < m.next; id += 1 {
		if o, ok := m.owner[id]; ok && o == owner && !m.burned[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *model) balance(owner account.Address) uint64 {
	return uint64(len(m.tokensOf(owner)))
}

func TestAgainstModel(t *testing.T) {
	const startID = 1

	tk := token.New(options(startID))
	m := &model{
		owner:        make(map[uint64]account.Address),
		burned:       make(map[uint64]bool),
		numberMinted: make(map[account.Address]uint64),
		numberBurned: make(map[account.Address]uint64),
		next:         startID,
	}

	// counters observed at the previous step
	previousMinted := make(map[account.Address]uint64)
	previousBurned := make(map[account.Address]uint64)
	previousTotalBurned := uint64(0)
	previousTotalMinted := uint64(0)
	owners := []account.Address{ownerA, ownerB, operator}
	random := rand.New(rand.NewSource(42))

	for step := 0; step < 500; step += 1 {
		switch n := random.Intn(10); {
		case n < 2 || m.next == startID:
			to := owners[random.Intn(len(owners))]
			quantity := uint64(1 + random.Intn(10))
			first, err := tk.Mint(to, quantity)
			assert.Nil(t, err, "mint")
			assert.Equal(t, m.next, first, "first id")
			for id := first; id < first+quantity; id += 1 {
				m.owner[id] = to
			}
			m.next += quantity
			m.numberMinted[to] += quantity

		case n < 4:
			id := startID + uint64(random.Int63n(int64(m.next-startID)))
			caller := owners[random.Intn(len(owners))]
			err := tk.Burn(caller, id)
			switch {
			case m.burned[id]:
				assert.Equal(t, fault.ErrNonexistentToken, err, "burn burned: %d", id)
			case m.owner[id] != caller:
				assert.Equal(t, fault.ErrNotOwnerNorApproved, err, "burn by stranger: %d", id)
			default:
				assert.Nil(t, err, "burn: %d", id)
				m.burned[id] = true
				m.numberBurned[caller] += 1
				m.totalBurned += 1
			}

		default:
			id := startID + uint64(random.Int63n(int64(m.next-startID)))
			from := owners[random.Intn(len(owners))]
			to := owners[random.Intn(len(owners))]
			err := tk.Transfer(from, from, to, id)
			switch {
			case m.burned[id]:
				assert.Equal(t, fault.ErrNonexistentToken, err, "transfer burned: %d", id)
			case m.owner[id] != from:
				assert.Equal(t, fault.ErrTransferFromIncorrectOwner, err, "transfer wrong owner: %d", id)
			default:
				assert.Nil(t, err, "transfer: %d", id)
				m.owner[id] = to
			}
		}

		// counters match and never decrease
		assert.Equal(t, m.totalBurned, tk.TotalBurned(), "step: %d  total burned", step)
		assert.True(t, tk.TotalBurned() >= previousTotalBurned, "step: %d  total burned decreased", step)
		assert.True(t, tk.TotalMinted() >= previousTotalMinted, "step: %d  total minted decreased", step)
		previousTotalBurned = tk.TotalBurned()
		previousTotalMinted = tk.TotalMinted()
		for _, owner := range owners {
			minted := tk.NumberMinted(owner)
			burned := tk.NumberBurned(owner)
			assert.Equal(t, m.numberMinted[owner], minted, "step: %d  number minted", step)
			assert.Equal(t, m.numberBurned[owner], burned, "step: %d  number burned", step)
			assert.True(t, minted >= previousMinted[owner], "step: %d  number minted decreased", step)
			assert.True(t, burned >= previousBurned[owner], "step: %d  number burned decreased", step)
			previousMinted[owner] = minted
			previousBurned[owner] = burned
		}

		if 0 != step%25 {
			continue
		}

		// full comparison
		for id := uint64(0); id < m.next+2; id += 1 {
			a, ok := tk.Resolve(id)
			o, assigned := m.owner[id]
			assert.Equal(t, assigned, ok, "step: %d  id: %d  assigned", step, id)
			if assigned {
				assert.Equal(t, o, a.Owner, "step: %d  id: %d  owner", step, id)
				assert.Equal(t, m.burned[id], a.Burned, "step: %d  id: %d  burned", step, id)
			}
		}
		burned := uint64(0)
		for range m.burned {
			burned += 1
		}
		assert.Equal(t, m.next-startID-burned, tk.TotalSupply(), "step: %d  total supply", step)
		for _, owner := range owners {
			ids, err := tk.TokensOfOwner(owner)
			assert.Nil(t, err, "tokens of owner")
			assert.Equal(t, m.tokensOf(owner), ids, "step: %d  tokens of owner", step)
			assert.Equal(t, m.balance(owner), tk.BalanceOf(owner), "step: %d  balance", step)
		}
	}
}

func TestApprovals(t *testing.T) {
	tk := token.New(options(0))

	_, err := tk.Mint(ownerA, 4)
	assert.Nil(t, err, "mint")

	assert.Equal(t, fault.ErrNotOwnerNorApproved, tk.Transfer(operator, ownerA, ownerB, 1), "unapproved")

	assert.Nil(t, tk.Approve(ownerA, operator, 1), "approve")
	approved, _ := tk.GetApproved(1)
	assert.Equal(t, operator, approved, "approved")

	assert.Nil(t, tk.Transfer(operator, ownerA, ownerB, 1), "approved transfer")
	approved, _ = tk.GetApproved(1)
	assert.Equal(t, account.Zero, approved, "approval cleared by transfer")
	assert.Equal(t, fault.ErrNotOwnerNorApproved, tk.Transfer(operator, ownerB, ownerA, 1), "approval reused")

	tk.SetApprovalForAll(ownerA, operator, true)
	assert.True(t, tk.IsApprovedForAll(ownerA, operator), "operator")
	assert.Nil(t, tk.Burn(operator, 2), "operator burn")
	assert.Equal(t, uint64(1), tk.NumberBurned(ownerA), "burn counted for owner")
	assert.Equal(t, uint64(0), tk.NumberBurned(operator), "burn counted for operator")
}

func TestAuxAndExtraData(t *testing.T) {
	tk := token.New(options(0))

	_, err := tk.Mint(ownerA, 5)
	assert.Nil(t, err, "mint")

	tk.SetAux(ownerA, 12345)
	assert.Nil(t, tk.Transfer(ownerA, ownerA, ownerB, 0), "transfer")
	assert.Equal(t, uint64(12345), tk.Aux(ownerA), "aux changed by transfer")
	assert.Equal(t, uint64(0), tk.Aux(ownerB), "aux of recipient")

	assert.Equal(t, fault.ErrOwnershipNotInitialised, tk.SetExtraDataAt(3, 9), "no anchor")
	assert.Nil(t, tk.InitialiseAt(3), "initialise")
	assert.Nil(t, tk.SetExtraDataAt(3, 9), "extra data")

	a, _ := tk.Resolve(4)
	assert.Equal(t, uint32(9), a.ExtraData, "inherited extra data")
	a, _ = tk.Resolve(2)
	assert.Equal(t, uint32(0), a.ExtraData, "earlier run")
}

func TestOpenSave(t *testing.T) {
	store, err := storage.Open(filepath.Join(dir, "token.leveldb"), storage.ReadWrite, logger.New(category))
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	defer store.Close()

	tk, err := token.Open(store, options(1))
	assert.Nil(t, err, "open empty")

	_, err = tk.Mint(ownerA, 10)
	assert.Nil(t, err, "mint")
	assert.Nil(t, tk.Burn(ownerA, 5), "burn")
	assert.Nil(t, tk.Transfer(ownerA, ownerA, ownerB, 6), "transfer")
	tk.SetAux(ownerB, 77)
	assert.Nil(t, tk.Save(store), "save")

	// configured start id is ignored for a saved ledger
	reloaded, err := token.Open(store, options(100))
	assert.Nil(t, err, "reopen")

	assert.Equal(t, tk.Summary().StartID, reloaded.Summary().StartID, "start id")
	assert.Equal(t, tk.Summary().CurrentIndex, reloaded.Summary().CurrentIndex, "current index")
	assert.Equal(t, uint64(9), reloaded.TotalSupply(), "total supply")
	assert.Equal(t, uint64(1), reloaded.TotalBurned(), "total burned")
	assert.Equal(t, uint64(77), reloaded.Aux(ownerB), "aux")

	for _, owner := range []account.Address{ownerA, ownerB} {
		expected, _ := tk.TokensOfOwner(owner)
		actual, _ := reloaded.TokensOfOwner(owner)
		assert.Equal(t, expected, actual, "tokens of owner")
		assert.Equal(t, tk.BalanceOf(owner), reloaded.BalanceOf(owner), "balance")
		assert.Equal(t, tk.NumberMinted(owner), reloaded.NumberMinted(owner), "number minted")
	}
	assert.Equal(t, tk.ExplicitOwnershipsOf([]uint64{0, 1, 5, 6, 7, 11}), reloaded.ExplicitOwnershipsOf([]uint64{0, 1, 5, 6, 7, 11}), "explicit ownerships")

	// the reloaded ledger continues from where the first left off
	first, err := reloaded.Mint(ownerB, 1)
	assert.Nil(t, err, "mint after reload")
	assert.Equal(t, uint64(11), first, "first id after reload")
}

func TestConcurrentReaders(t *testing.T) {
	tk := token.New(options(0))

	_, err := tk.Mint(ownerA, 100)
	assert.Nil(t, err, "mint")

	var wg sync.WaitGroup
	for i := 0; i < 4; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j += 1 {
				_, _ = tk.TokensOfOwnerIn(ownerA, 0, 100)
				_ = tk.ExplicitOwnershipOf(uint64(j))
				_ = tk.BalanceOf(ownerB)
			}
		}()
	}

	for id := uint64(0); id < 100; id += 2 {
		assert.Nil(t, tk.Transfer(ownerA, ownerA, ownerB, id), "transfer: %d", id)
	}
	wg.Wait()

	assert.Equal(t, uint64(50), tk.BalanceOf(ownerA), "balance A")
	assert.Equal(t, uint64(50), tk.BalanceOf(ownerB), "balance B")
	ids, _ := tk.TokensOfOwnerIn(ownerB, 0, 10)
	assert.Equal(t, []uint64{0, 2, 4, 6, 8}, ids, "alternate ids")

	summary := tk.Summary()
	assert.Equal(t, 100, summary.Stats.Anchors, "one anchor per id after alternating moves")
	var zero ownership.Anchor
	assert.NotEqual(t, zero, tk.ExplicitOwnershipOf(99), "last id")
}
