// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	// CodecVersion is the current default codec version
	CodecVersion = 0

	pairCacheSize = 2048
)

// Codec serializes and deserializes pair state
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()
	Codec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		c.RegisterType(&Pair{}),
	)
	errs.Add(
		Codec.RegisterCodec(CodecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

var _ PairState = &pairState{}

type PairState interface {
	GetPair(pairID ids.ID) (*Pair, error)
	PutPair(pairID ids.ID, pair *Pair) error
	HasPair(pairID ids.ID) (bool, error)
}

type pairState struct {
	pairCache cache.Cacher
	pairDB    database.Database
}

func NewPairState(db database.Database) PairState {
	return &pairState{
		pairCache: &cache.LRU{Size: pairCacheSize},
		pairDB:    db,
	}
}

func (s *pairState) GetPair(pairID ids.ID) (*Pair, error) {
	if cached, ok := s.pairCache.Get(pairID); ok {
		if cached == nil {
			return nil, database.ErrNotFound
		}
		return cached.(*Pair), nil
	}

	bytes, err := s.pairDB.Get(pairID[:])
	if err != nil {
		return nil, err
	}

	pair := Pair{}
	if _, err := Codec.Unmarshal(bytes, &pair); err != nil {
		return nil, err
	}

	s.pairCache.Put(pairID, &pair)
	return &pair, nil
}

func (s *pairState) PutPair(pairID ids.ID, pair *Pair) error {
	bytes, err := Codec.Marshal(CodecVersion, pair)
	if err != nil {
		return err
	}
	s.pairCache.Put(pairID, pair)
	return s.pairDB.Put(pairID[:], bytes)
}

func (s *pairState) HasPair(pairID ids.ID) (bool, error) {
	if cached, ok := s.pairCache.Get(pairID); ok {
		return cached != nil, nil
	}
	return s.pairDB.Has(pairID[:])
}
