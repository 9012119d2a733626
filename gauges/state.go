// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package gauges

import (
	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

const (
	// CodecVersion is the current default codec version
	CodecVersion = 0

	gaugeCacheSize = 1024
)

var (
	gaugePrefix  = []byte("gauge")
	stakerPrefix = []byte("staker")

	_ GaugeState = &gaugeState{}
)

// Codec serializes and deserializes gauge state
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()
	Codec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		c.RegisterType(&Gauge{}),
		c.RegisterType(&Staker{}),
	)
	errs.Add(
		Codec.RegisterCodec(CodecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

type GaugeState interface {
	GetGauge(gaugeID ids.ID) (*Gauge, error)
	PutGauge(gaugeID ids.ID, gauge *Gauge) error
	HasGauge(gaugeID ids.ID) (bool, error)

	GetStaker(gaugeID ids.ID, owner ledger.Address) (*Staker, error)
	PutStaker(staker *Staker) error
}

type gaugeState struct {
	gaugeCache cache.Cacher
	gaugeDB    database.Database
	stakerDB   database.Database
}

func NewGaugeState(db database.Database) GaugeState {
	return &gaugeState{
		gaugeCache: &cache.LRU{Size: gaugeCacheSize},
		gaugeDB:    prefixdb.New(gaugePrefix, db),
		stakerDB:   prefixdb.New(stakerPrefix, db),
	}
}

func (s *gaugeState) GetGauge(gaugeID ids.ID) (*Gauge, error) {
	if cached, ok := s.gaugeCache.Get(gaugeID); ok {
		if cached == nil {
			return nil, database.ErrNotFound
		}
		return cached.(*Gauge), nil
	}

	bytes, err := s.gaugeDB.Get(gaugeID[:])
	if err != nil {
		return nil, err
	}
	gauge := Gauge{}
	if _, err := Codec.Unmarshal(bytes, &gauge); err != nil {
		return nil, err
	}
	s.gaugeCache.Put(gaugeID, &gauge)
	return &gauge, nil
}

func (s *gaugeState) PutGauge(gaugeID ids.ID, gauge *Gauge) error {
	bytes, err := Codec.Marshal(CodecVersion, gauge)
	if err != nil {
		return err
	}
	s.gaugeCache.Put(gaugeID, gauge)
	return s.gaugeDB.Put(gaugeID[:], bytes)
}

func (s *gaugeState) HasGauge(gaugeID ids.ID) (bool, error) {
	if cached, ok := s.gaugeCache.Get(gaugeID); ok {
		return cached != nil, nil
	}
	return s.gaugeDB.Has(gaugeID[:])
}

func stakerKey(gaugeID ids.ID, owner ledger.Address) []byte {
	return append(gaugeID[:], owner[:]...)
}

func (s *gaugeState) GetStaker(gaugeID ids.ID, owner ledger.Address) (*Staker, error) {
	bytes, err := s.stakerDB.Get(stakerKey(gaugeID, owner))
	if err != nil {
		return nil, err
	}
	staker := Staker{}
	if _, err := Codec.Unmarshal(bytes, &staker); err != nil {
		return nil, err
	}
	return &staker, nil
}

func (s *gaugeState) PutStaker(staker *Staker) error {
	bytes, err := Codec.Marshal(CodecVersion, staker)
	if err != nil {
		return err
	}
	return s.stakerDB.Put(stakerKey(staker.Gauge, staker.Owner), bytes)
}
