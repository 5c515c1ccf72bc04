// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package query

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/account"
	"github.com/bitmark-inc/runledger/fault"
	"github.com/bitmark-inc/runledger/ownership"
)

const (
	cleanupInterval = 5 * time.Minute
)

// Options - limits for the unbounded owner scan
//
// a zero Rate disables the limiter, a zero CacheExpiry the cache
type Options struct {
	Rate        float64
	Burst       int
	CacheExpiry time.Duration
}

// Layer - read only views over a ledger
//
// the caller must hold at least the ledger read lock
type Layer struct {
	log     *logger.L
	ledger  *ownership.Ledger
	limiter *rate.Limiter
	results *cache.Cache
}

// New - create a query layer
func New(ledger *ownership.Ledger, options Options, log *logger.L) *Layer {
	q := &Layer{
		log:    log,
		ledger: ledger,
	}
	if options.Rate > 0 {
		burst := options.Burst
		if burst < 1 {
			burst = 1
		}
		q.limiter = rate.NewLimiter(rate.Limit(options.Rate), burst)
	}
	if options.CacheExpiry > 0 {
		q.results = cache.New(options.CacheExpiry, cleanupInterval)
	}
	return q
}

// TokensOfOwner - every live identifier held by owner, ascending
//
// scans the whole identifier space, prefer TokensOfOwnerIn for large ledgers
func (q *Layer) TokensOfOwner(owner account.Address) ([]uint64, error) {

	// the version changes on every write, so stale entries are never hit
	key := hex.EncodeToString(owner[:]) + ":" + strconv.FormatUint(q.ledger.Version(), 10)
	if nil != q.results {
		if ids, found := q.results.Get(key); found {
			return append([]uint64{}, ids.([]uint64)...), nil
		}
	}

	if nil != q.limiter && !q.limiter.Allow() {
		return nil, fault.ErrRateLimiting
	}

	ids := q.scan(owner, q.ledger.StartID(), q.ledger.CurrentIndex(), ownership.Anchor{})

	if nil != q.results {
		q.results.SetDefault(key, append([]uint64{}, ids...))
	}

	q.log.Debugf("tokens of owner: %s  count: %d", owner, len(ids))
	return ids, nil
}

// TokensOfOwnerIn - live identifiers held by owner in [start, stop)
//
// the range is clamped to the assigned identifiers
func (q *Layer) TokensOfOwnerIn(owner account.Address, start uint64, stop uint64) ([]uint64, error) {
	if start >= stop {
		return nil, fault.ErrInvalidQueryRange
	}

	if start < q.ledger.StartID() {
		start = q.ledger.StartID()
	}
	if stop > q.ledger.CurrentIndex() {
		stop = q.ledger.CurrentIndex()
	}
	if start >= stop {
		return []uint64{}, nil
	}

	// state at start may be inherited from an earlier run
	initial, _ := q.ledger.Resolve(start)
	return q.scan(owner, start, stop, initial), nil
}

// forward walk tracking the current state at each anchor
func (q *Layer) scan(owner account.Address, start uint64, stop uint64, current ownership.Anchor) []uint64 {
	ids := make([]uint64, 0)
	for id := start; id < stop; id += 1 {
		if a, ok := q.ledger.At(id); ok {
			current = a
		}
		if !current.Burned && current.Owner == owner {
			ids = append(ids, id)
		}
	}
	return ids
}

// ExplicitOwnershipOf - externally visible ownership of id
//
// the zero anchor for an identifier not yet assigned; a burned identifier
// returns its tombstone
func (q *Layer) ExplicitOwnershipOf(id uint64) ownership.Anchor {
	if !q.ledger.InRange(id) {
		return ownership.Anchor{}
	}
	if a, ok := q.ledger.At(id); ok && a.Burned {
		return a
	}
	a, _ := q.ledger.Resolve(id)
	return a
}

// ExplicitOwnershipsOf - ExplicitOwnershipOf for each of ids, in order
func (q *Layer) ExplicitOwnershipsOf(ids []uint64) []ownership.Anchor {
	result := make([]ownership.Anchor, len(ids))
	for i, id := range ids {
		result[i] = q.ExplicitOwnershipOf(id)
	}
	return result
}

// OwnerOf - current owner of a live id
func (q *Layer) OwnerOf(id uint64) (account.Address, error) {
	a, ok := q.ledger.Resolve(id)
	if !ok || a.Burned {
		return account.Zero, fault.ErrNonexistentToken
	}
	return a.Owner, nil
}

// Exists - id assigned and not burned
func (q *Layer) Exists(id uint64) bool {
	return q.ledger.ExistsAndLive(id)
}

// Resolve - state of id, including burned tombstones
func (q *Layer) Resolve(id uint64) (ownership.Anchor, bool) {
	return q.ledger.Resolve(id)
}

// OwnershipAt - the raw anchor stored at id, if any
func (q *Layer) OwnershipAt(id uint64) (ownership.Anchor, bool) {
	return q.ledger.At(id)
}

// BalanceOf - live items held
func (q *Layer) BalanceOf(owner account.Address) uint64 {
	return q.ledger.Registry().Get(owner).Balance
}

// NumberMinted - items ever minted to owner
func (q *Layer) NumberMinted(owner account.Address) uint64 {
	return q.ledger.Registry().Get(owner).NumberMinted
}

// NumberBurned - items burned while held by owner
func (q *Layer) NumberBurned(owner account.Address) uint64 {
	return q.ledger.Registry().Get(owner).NumberBurned
}

// Aux - the opaque tag of owner
func (q *Layer) Aux(owner account.Address) uint64 {
	return q.ledger.Registry().Aux(owner)
}

// TotalMinted - identifiers ever assigned
func (q *Layer) TotalMinted() uint64 {
	return q.ledger.TotalMinted()
}

// TotalBurned - identifiers burned
func (q *Layer) TotalBurned() uint64 {
	return q.ledger.TotalBurned()
}

// TotalSupply - identifiers assigned and not burned
func (q *Layer) TotalSupply() uint64 {
	return q.ledger.TotalMinted() - q.ledger.TotalBurned()
}
