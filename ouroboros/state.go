// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

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

	lockerCacheSize      = 2048
	beneficiaryCacheSize = 512
)

var (
	ouroborosPrefix   = []byte("ouroboros")
	lockerPrefix      = []byte("locker")
	beneficiaryPrefix = []byte("beneficiary")
	assetPrefix       = []byte("asset")
	snapshotPrefix    = []byte("snapshot")
	claimantPrefix    = []byte("claimant")

	_ State = &state{}
)

// Codec serializes and deserializes escrow state
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()
	Codec = codec.NewDefaultManager()

	errs := wrappers.Errs{}
	errs.Add(
		c.RegisterType(&Ouroboros{}),
		c.RegisterType(&Locker{}),
		c.RegisterType(&Beneficiary{}),
		c.RegisterType(&Asset{}),
		c.RegisterType(&Snapshot{}),
		c.RegisterType(&Claimant{}),
	)
	errs.Add(
		Codec.RegisterCodec(CodecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

// State persists every escrow aggregate. Assets, snapshots, and claimants
// are scoped to their ouroboros instance; lockers and beneficiaries are
// keyed globally, matching their derivation seeds.
type State interface {
	GetOuroboros(id uint64) (*Ouroboros, error)
	PutOuroboros(o *Ouroboros) error
	HasOuroboros(id uint64) (bool, error)

	GetLocker(id ids.ID) (*Locker, error)
	PutLocker(locker *Locker) error
	HasLocker(id ids.ID) (bool, error)
	DeleteLocker(id ids.ID) error

	GetBeneficiary(account ledger.Address) (*Beneficiary, error)
	PutBeneficiary(beneficiary *Beneficiary) error
	HasBeneficiary(account ledger.Address) (bool, error)

	GetAsset(ouroborosID uint64, mint ledger.Address) (*Asset, error)
	PutAsset(ouroborosID uint64, asset *Asset) error

	GetSnapshot(ouroborosID uint64, mint ledger.Address, index uint64) (*Snapshot, error)
	PutSnapshot(ouroborosID uint64, snapshot *Snapshot) error

	GetClaimant(ouroborosID uint64, mint ledger.Address, locker ids.ID) (*Claimant, error)
	PutClaimant(ouroborosID uint64, claimant *Claimant) error
}

type state struct {
	lockerCache      cache.Cacher
	beneficiaryCache cache.Cacher

	ouroborosDB   database.Database
	lockerDB      database.Database
	beneficiaryDB database.Database
	assetDB       database.Database
	snapshotDB    database.Database
	claimantDB    database.Database
}

func NewState(db database.Database) State {
	return &state{
		lockerCache:      &cache.LRU{Size: lockerCacheSize},
		beneficiaryCache: &cache.LRU{Size: beneficiaryCacheSize},
		ouroborosDB:      prefixdb.New(ouroborosPrefix, db),
		lockerDB:         prefixdb.New(lockerPrefix, db),
		beneficiaryDB:    prefixdb.New(beneficiaryPrefix, db),
		assetDB:          prefixdb.New(assetPrefix, db),
		snapshotDB:       prefixdb.New(snapshotPrefix, db),
		claimantDB:       prefixdb.New(claimantPrefix, db),
	}
}

func (s *state) GetOuroboros(id uint64) (*Ouroboros, error) {
	bytes, err := s.ouroborosDB.Get(ledger.Uint64Seed(id))
	if err != nil {
		return nil, err
	}
	o := Ouroboros{}
	if _, err := Codec.Unmarshal(bytes, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *state) PutOuroboros(o *Ouroboros) error {
	bytes, err := Codec.Marshal(CodecVersion, o)
	if err != nil {
		return err
	}
	return s.ouroborosDB.Put(ledger.Uint64Seed(o.ID), bytes)
}

func (s *state) HasOuroboros(id uint64) (bool, error) {
	return s.ouroborosDB.Has(ledger.Uint64Seed(id))
}

func (s *state) GetLocker(id ids.ID) (*Locker, error) {
	if cached, ok := s.lockerCache.Get(id); ok {
		if cached == nil {
			return nil, database.ErrNotFound
		}
		return cached.(*Locker), nil
	}

	bytes, err := s.lockerDB.Get(id[:])
	if err != nil {
		return nil, err
	}
	locker := Locker{}
	if _, err := Codec.Unmarshal(bytes, &locker); err != nil {
		return nil, err
	}
	s.lockerCache.Put(id, &locker)
	return &locker, nil
}

func (s *state) PutLocker(locker *Locker) error {
	bytes, err := Codec.Marshal(CodecVersion, locker)
	if err != nil {
		return err
	}
	s.lockerCache.Put(locker.ID, locker)
	return s.lockerDB.Put(locker.ID[:], bytes)
}

func (s *state) HasLocker(id ids.ID) (bool, error) {
	if cached, ok := s.lockerCache.Get(id); ok {
		return cached != nil, nil
	}
	return s.lockerDB.Has(id[:])
}

func (s *state) DeleteLocker(id ids.ID) error {
	s.lockerCache.Put(id, nil)
	return s.lockerDB.Delete(id[:])
}

func (s *state) GetBeneficiary(account ledger.Address) (*Beneficiary, error) {
	if cached, ok := s.beneficiaryCache.Get(account); ok {
		if cached == nil {
			return nil, database.ErrNotFound
		}
		return cached.(*Beneficiary), nil
	}

	bytes, err := s.beneficiaryDB.Get(account[:])
	if err != nil {
		return nil, err
	}
	beneficiary := Beneficiary{}
	if _, err := Codec.Unmarshal(bytes, &beneficiary); err != nil {
		return nil, err
	}
	s.beneficiaryCache.Put(account, &beneficiary)
	return &beneficiary, nil
}

func (s *state) PutBeneficiary(beneficiary *Beneficiary) error {
	bytes, err := Codec.Marshal(CodecVersion, beneficiary)
	if err != nil {
		return err
	}
	s.beneficiaryCache.Put(beneficiary.Account, beneficiary)
	return s.beneficiaryDB.Put(beneficiary.Account[:], bytes)
}

func (s *state) HasBeneficiary(account ledger.Address) (bool, error) {
	if cached, ok := s.beneficiaryCache.Get(account); ok {
		return cached != nil, nil
	}
	return s.beneficiaryDB.Has(account[:])
}

func assetKey(ouroborosID uint64, mint ledger.Address) []byte {
	return append(ledger.Uint64Seed(ouroborosID), mint[:]...)
}

func snapshotKey(ouroborosID uint64, mint ledger.Address, index uint64) []byte {
	key := append(ledger.Uint64Seed(ouroborosID), mint[:]...)
	return append(key, ledger.Uint64Seed(index)...)
}

func claimantKey(ouroborosID uint64, mint ledger.Address, locker ids.ID) []byte {
	key := append(ledger.Uint64Seed(ouroborosID), mint[:]...)
	return append(key, locker[:]...)
}

func (s *state) GetAsset(ouroborosID uint64, mint ledger.Address) (*Asset, error) {
	bytes, err := s.assetDB.Get(assetKey(ouroborosID, mint))
	if err != nil {
		return nil, err
	}
	asset := Asset{}
	if _, err := Codec.Unmarshal(bytes, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *state) PutAsset(ouroborosID uint64, asset *Asset) error {
	bytes, err := Codec.Marshal(CodecVersion, asset)
	if err != nil {
		return err
	}
	return s.assetDB.Put(assetKey(ouroborosID, asset.Mint), bytes)
}

func (s *state) GetSnapshot(ouroborosID uint64, mint ledger.Address, index uint64) (*Snapshot, error) {
	bytes, err := s.snapshotDB.Get(snapshotKey(ouroborosID, mint, index))
	if err != nil {
		return nil, err
	}
	snapshot := Snapshot{}
	if _, err := Codec.Unmarshal(bytes, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *state) PutSnapshot(ouroborosID uint64, snapshot *Snapshot) error {
	bytes, err := Codec.Marshal(CodecVersion, snapshot)
	if err != nil {
		return err
	}
	return s.snapshotDB.Put(snapshotKey(ouroborosID, snapshot.Mint, snapshot.Index), bytes)
}

func (s *state) GetClaimant(ouroborosID uint64, mint ledger.Address, locker ids.ID) (*Claimant, error) {
	bytes, err := s.claimantDB.Get(claimantKey(ouroborosID, mint, locker))
	if err != nil {
		return nil, err
	}
	claimant := Claimant{}
	if _, err := Codec.Unmarshal(bytes, &claimant); err != nil {
		return nil, err
	}
	return &claimant, nil
}

func (s *state) PutClaimant(ouroborosID uint64, claimant *Claimant) error {
	bytes, err := Codec.Marshal(CodecVersion, claimant)
	if err != nil {
		return err
	}
	return s.claimantDB.Put(claimantKey(ouroborosID, claimant.Mint, claimant.Locker), bytes)
}
