// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"

	"github.com/ouroboros-finance/ouroborosvm/gauges"
	"github.com/ouroboros-finance/ouroborosvm/ledger"
	"github.com/ouroboros-finance/ouroborosvm/ouroboros"
	"github.com/ouroboros-finance/ouroborosvm/pools"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix = []byte("singleton")
	tokenStatePrefix     = []byte("token")
	pairStatePrefix      = []byte("pair")
	escrowStatePrefix    = []byte("escrow")
	gaugeStatePrefix     = []byte("gauge")

	_ State = &state{}
)

// State bundles every aggregate store over a single versioned database.
// Writes stay pending until Commit; Abort drops everything since the last
// commit. One instruction maps to exactly one Commit or Abort.
type State interface {
	InitializedState

	Tokens() ledger.TokenState
	Pairs() pools.PairState
	Escrow() ouroboros.State
	Gauges() gauges.GaugeState

	Commit() error
	Abort()
	Close() error
}

type state struct {
	InitializedState

	tokens ledger.TokenState
	pairs  pools.PairState
	escrow ouroboros.State
	gauges gauges.GaugeState

	baseDB *versiondb.Database
}

func NewState(db database.Database) State {
	// create a new baseDB
	baseDB := versiondb.New(db)

	// return state with created sub state components
	return &state{
		InitializedState: NewInitializedState(prefixdb.New(singletonStatePrefix, baseDB)),
		tokens:           ledger.NewTokenState(prefixdb.New(tokenStatePrefix, baseDB)),
		pairs:            pools.NewPairState(prefixdb.New(pairStatePrefix, baseDB)),
		escrow:           ouroboros.NewState(prefixdb.New(escrowStatePrefix, baseDB)),
		gauges:           gauges.NewGaugeState(prefixdb.New(gaugeStatePrefix, baseDB)),
		baseDB:           baseDB,
	}
}

func (s *state) Tokens() ledger.TokenState { return s.tokens }
func (s *state) Pairs() pools.PairState    { return s.pairs }
func (s *state) Escrow() ouroboros.State   { return s.escrow }
func (s *state) Gauges() gauges.GaugeState { return s.gauges }

// Commit commits pending operations to baseDB
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

// Abort drops pending operations
func (s *state) Abort() {
	s.baseDB.Abort()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
