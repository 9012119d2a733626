// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/api"
	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// OuroborosService exposes the vote-escrow and emission engine.
type OuroborosService struct {
	vm *VM
}

// GetArgs are the arguments to Get
type GetArgs struct {
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
}

// GetReply is the reply from Get
type GetReply struct {
	Mint            string       `json:"mint"`
	Authority       string       `json:"authority"`
	Period          cjson.Uint64 `json:"period"`
	LastPeriod      int64        `json:"lastPeriod"`
	LastPeriodVotes cjson.Uint64 `json:"lastPeriodVotes"`
	TotalVotes      cjson.Uint64 `json:"totalVotes"`
	ExpansionFactor cjson.Uint64 `json:"expansionFactor"`
	TimeMultiplier  cjson.Uint64 `json:"timeMultiplier"`
}

// Get returns the emission schedule's configuration and vote tallies.
func (s *OuroborosService) Get(_ *http.Request, args *GetArgs, reply *GetReply) error {
	return s.vm.view(func() error {
		o, err := s.vm.state.Escrow().GetOuroboros(uint64(args.OuroborosID))
		if err != nil {
			return err
		}
		reply.Mint = o.Mint.String()
		reply.Authority = o.Authority.String()
		reply.Period = cjson.Uint64(o.Period)
		reply.LastPeriod = o.LastPeriod
		reply.LastPeriodVotes = cjson.Uint64(o.LastPeriodVotes)
		reply.TotalVotes = cjson.Uint64(o.TotalVotes)
		reply.ExpansionFactor = cjson.Uint64(o.ExpansionFactor)
		reply.TimeMultiplier = cjson.Uint64(o.TimeMultiplier)
		return nil
	})
}

// CreateBeneficiaryArgs are the arguments to CreateBeneficiary
type CreateBeneficiaryArgs struct {
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	Account     string       `json:"account"`
}

// CreateBeneficiary registers an account that lockers can direct votes at.
func (s *OuroborosService) CreateBeneficiary(_ *http.Request, args *CreateBeneficiaryArgs, reply *api.EmptyReply) error {
	account, err := parseAddress(args.Account)
	if err != nil {
		return err
	}
	return s.vm.run("ouroboros.createBeneficiary", func() error {
		_, err := s.vm.escrow.CreateBeneficiary(uint64(args.OuroborosID), account)
		return err
	})
}

// CreateLockerArgs are the arguments to CreateLocker
type CreateLockerArgs struct {
	Creator     string       `json:"creator"`
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	LockerID    ids.ID       `json:"lockerID"`
	Amount      cjson.Uint64 `json:"amount"`
	Period      cjson.Uint64 `json:"period"`
}

// CreateLockerReply is the reply from CreateLocker
type CreateLockerReply struct {
	Votes   cjson.Uint64 `json:"votes"`
	Account string       `json:"account"`
	Receipt string       `json:"receipt"`
}

// CreateLocker escrows [args.Amount] of the emission mint for
// [args.Period] seconds and mints the receipt to the creator.
func (s *OuroborosService) CreateLocker(_ *http.Request, args *CreateLockerArgs, reply *CreateLockerReply) error {
	creator, err := parseAddress(args.Creator)
	if err != nil {
		return err
	}
	now := s.vm.now()
	return s.vm.run("ouroboros.createLocker", func() error {
		locker, err := s.vm.escrow.CreateLocker(
			creator,
			uint64(args.OuroborosID),
			args.LockerID,
			uint64(args.Amount),
			uint64(args.Period),
			now,
		)
		if err != nil {
			return err
		}
		reply.Votes = cjson.Uint64(locker.Votes)
		reply.Account = locker.Account.String()
		reply.Receipt = locker.Receipt.String()
		return nil
	})
}

// RedeemLockerArgs are the arguments to RedeemLocker
type RedeemLockerArgs struct {
	Holder      string       `json:"holder"`
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	LockerID    ids.ID       `json:"lockerID"`
}

// RedeemLockerReply is the reply from RedeemLocker
type RedeemLockerReply struct {
	Amount cjson.Uint64 `json:"amount"`
}

// RedeemLocker returns the escrowed principal to the receipt holder once
// the lock has expired, burning the receipt and the locker record.
func (s *OuroborosService) RedeemLocker(_ *http.Request, args *RedeemLockerArgs, reply *RedeemLockerReply) error {
	holder, err := parseAddress(args.Holder)
	if err != nil {
		return err
	}
	now := s.vm.now()
	return s.vm.run("ouroboros.redeemLocker", func() error {
		amount, err := s.vm.escrow.RedeemLocker(holder, uint64(args.OuroborosID), args.LockerID, now)
		if err != nil {
			return err
		}
		reply.Amount = cjson.Uint64(amount)
		return nil
	})
}

// VoteArgs are the arguments to InitializeVote and CastVote
type VoteArgs struct {
	Voter       string       `json:"voter"`
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	LockerID    ids.ID       `json:"lockerID"`
	Account     string       `json:"account"`
}

// InitializeVote directs the locker's votes at a beneficiary for the first
// time.
func (s *OuroborosService) InitializeVote(_ *http.Request, args *VoteArgs, reply *api.EmptyReply) error {
	voter, err := parseAddress(args.Voter)
	if err != nil {
		return err
	}
	account, err := parseAddress(args.Account)
	if err != nil {
		return err
	}
	return s.vm.run("ouroboros.initializeVote", func() error {
		return s.vm.escrow.InitializeVote(voter, uint64(args.OuroborosID), args.LockerID, account)
	})
}

// CastVote moves the locker's votes to a different beneficiary.
func (s *OuroborosService) CastVote(_ *http.Request, args *VoteArgs, reply *api.EmptyReply) error {
	voter, err := parseAddress(args.Voter)
	if err != nil {
		return err
	}
	account, err := parseAddress(args.Account)
	if err != nil {
		return err
	}
	return s.vm.run("ouroboros.castVote", func() error {
		return s.vm.escrow.CastVote(voter, uint64(args.OuroborosID), args.LockerID, account)
	})
}

// ResetVoteArgs are the arguments to ResetVote
type ResetVoteArgs struct {
	Voter       string       `json:"voter"`
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	LockerID    ids.ID       `json:"lockerID"`
}

// ResetVote withdraws the locker's votes entirely.
func (s *OuroborosService) ResetVote(_ *http.Request, args *ResetVoteArgs, reply *api.EmptyReply) error {
	voter, err := parseAddress(args.Voter)
	if err != nil {
		return err
	}
	return s.vm.run("ouroboros.resetVote", func() error {
		return s.vm.escrow.ResetVote(voter, uint64(args.OuroborosID), args.LockerID)
	})
}

// ClaimIncentivesArgs are the arguments to ClaimIncentives
type ClaimIncentivesArgs struct {
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	Account     string       `json:"account"`
}

// ClaimIncentivesReply is the reply from ClaimIncentives
type ClaimIncentivesReply struct {
	Amount cjson.Uint64 `json:"amount"`
}

// ClaimIncentives settles the beneficiary into the current epoch and mints
// its share of the epoch emission.
func (s *OuroborosService) ClaimIncentives(_ *http.Request, args *ClaimIncentivesArgs, reply *ClaimIncentivesReply) error {
	account, err := parseAddress(args.Account)
	if err != nil {
		return err
	}
	now := s.vm.now()
	return s.vm.run("ouroboros.claimIncentives", func() error {
		amount, err := s.vm.escrow.ClaimIncentives(uint64(args.OuroborosID), account, now)
		if err != nil {
			return err
		}
		reply.Amount = cjson.Uint64(amount)
		return nil
	})
}

// ReceiveAssetArgs are the arguments to ReceiveAsset
type ReceiveAssetArgs struct {
	Sender        string       `json:"sender"`
	OuroborosID   cjson.Uint64 `json:"ouroborosID"`
	Mint          string       `json:"mint"`
	SnapshotIndex cjson.Uint64 `json:"snapshotIndex"`
	Amount        cjson.Uint64 `json:"amount"`
}

// ReceiveAsset deposits protocol revenue into the reward ledger of [mint]
// under the snapshot the sender claims to be current.
func (s *OuroborosService) ReceiveAsset(_ *http.Request, args *ReceiveAssetArgs, reply *api.EmptyReply) error {
	sender, err := parseAddress(args.Sender)
	if err != nil {
		return err
	}
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	now := s.vm.now()
	return s.vm.run("ouroboros.receiveAsset", func() error {
		return s.vm.escrow.ReceiveAsset(
			sender,
			uint64(args.OuroborosID),
			mint,
			uint64(args.SnapshotIndex),
			uint64(args.Amount),
			now,
		)
	})
}

// CollectFeesArgs are the arguments to CollectFees
type CollectFeesArgs struct {
	Holder      string       `json:"holder"`
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	LockerID    ids.ID       `json:"lockerID"`
	Mint        string       `json:"mint"`
}

// CollectFeesReply is the reply from CollectFees
type CollectFeesReply struct {
	Amount cjson.Uint64 `json:"amount"`
}

// CollectFees pays the locker its time-weighted share of the deposited
// revenue in [mint] since its last claim.
func (s *OuroborosService) CollectFees(_ *http.Request, args *CollectFeesArgs, reply *CollectFeesReply) error {
	holder, err := parseAddress(args.Holder)
	if err != nil {
		return err
	}
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	now := s.vm.now()
	return s.vm.run("ouroboros.collectFees", func() error {
		amount, err := s.vm.escrow.CollectFees(holder, uint64(args.OuroborosID), args.LockerID, mint, now)
		if err != nil {
			return err
		}
		reply.Amount = cjson.Uint64(amount)
		return nil
	})
}

// GetLockerArgs are the arguments to GetLocker
type GetLockerArgs struct {
	LockerID ids.ID `json:"lockerID"`
}

// GetLockerReply is the reply from GetLocker
type GetLockerReply struct {
	Account           string       `json:"account"`
	Receipt           string       `json:"receipt"`
	Beneficiary       string       `json:"beneficiary"`
	Amount            cjson.Uint64 `json:"amount"`
	Votes             cjson.Uint64 `json:"votes"`
	CreationTimestamp int64        `json:"creationTimestamp"`
	UnlockTimestamp   int64        `json:"unlockTimestamp"`
}

// GetLocker returns the locker's escrow state and current vote target.
func (s *OuroborosService) GetLocker(_ *http.Request, args *GetLockerArgs, reply *GetLockerReply) error {
	return s.vm.view(func() error {
		locker, err := s.vm.state.Escrow().GetLocker(args.LockerID)
		if err != nil {
			return err
		}
		reply.Account = locker.Account.String()
		reply.Receipt = locker.Receipt.String()
		reply.Beneficiary = locker.Beneficiary.String()
		reply.Amount = cjson.Uint64(locker.Amount)
		reply.Votes = cjson.Uint64(locker.Votes)
		reply.CreationTimestamp = locker.CreationTimestamp
		reply.UnlockTimestamp = locker.UnlockTimestamp
		return nil
	})
}

// GetAssetArgs are the arguments to GetAsset
type GetAssetArgs struct {
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	Mint        string       `json:"mint"`
}

// GetAssetReply is the reply from GetAsset
type GetAssetReply struct {
	Account           string       `json:"account"`
	RewardHeight      cjson.Uint64 `json:"rewardHeight"`
	LastUpdate        int64        `json:"lastUpdate"`
	LastSnapshotIndex cjson.Uint64 `json:"lastSnapshotIndex"`
}

// GetAsset returns the reward ledger's cursor state for [mint].
func (s *OuroborosService) GetAsset(_ *http.Request, args *GetAssetArgs, reply *GetAssetReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		asset, err := s.vm.state.Escrow().GetAsset(uint64(args.OuroborosID), mint)
		if err != nil {
			return err
		}
		reply.Account = asset.Account.String()
		reply.RewardHeight = cjson.Uint64(asset.RewardHeight)
		reply.LastUpdate = asset.LastUpdate
		reply.LastSnapshotIndex = cjson.Uint64(asset.LastSnapshotIndex)
		return nil
	})
}

// GetSnapshotArgs are the arguments to GetSnapshot
type GetSnapshotArgs struct {
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	Mint        string       `json:"mint"`
	Index       cjson.Uint64 `json:"index"`
}

// GetSnapshotReply is the reply from GetSnapshot
type GetSnapshotReply struct {
	Timestamp int64        `json:"timestamp"`
	Rewards   cjson.Uint64 `json:"rewards"`
	Votes     cjson.Uint64 `json:"votes"`
}

// GetSnapshot returns one period's reward bucket for [mint].
func (s *OuroborosService) GetSnapshot(_ *http.Request, args *GetSnapshotArgs, reply *GetSnapshotReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		snapshot, err := s.vm.state.Escrow().GetSnapshot(uint64(args.OuroborosID), mint, uint64(args.Index))
		if err != nil {
			return err
		}
		reply.Timestamp = snapshot.Timestamp
		reply.Rewards = cjson.Uint64(snapshot.Rewards)
		reply.Votes = cjson.Uint64(snapshot.Votes)
		return nil
	})
}

// GetClaimantArgs are the arguments to GetClaimant
type GetClaimantArgs struct {
	OuroborosID cjson.Uint64 `json:"ouroborosID"`
	Mint        string       `json:"mint"`
	LockerID    ids.ID       `json:"lockerID"`
}

// GetClaimantReply is the reply from GetClaimant
type GetClaimantReply struct {
	LastClaim int64 `json:"lastClaim"`
}

// GetClaimant returns how far the locker has collected against [mint].
func (s *OuroborosService) GetClaimant(_ *http.Request, args *GetClaimantArgs, reply *GetClaimantReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		claimant, err := s.vm.state.Escrow().GetClaimant(uint64(args.OuroborosID), mint, args.LockerID)
		if err != nil {
			return err
		}
		reply.LastClaim = claimant.LastClaim
		return nil
	})
}

// GetBeneficiaryArgs are the arguments to GetBeneficiary
type GetBeneficiaryArgs struct {
	Account string `json:"account"`
}

// GetBeneficiaryReply is the reply from GetBeneficiary
type GetBeneficiaryReply struct {
	Votes      cjson.Uint64 `json:"votes"`
	Weight     cjson.Uint64 `json:"weight"`
	LastUpdate int64        `json:"lastUpdate"`
}

// GetBeneficiary returns the beneficiary's vote tally and settlement state.
func (s *OuroborosService) GetBeneficiary(_ *http.Request, args *GetBeneficiaryArgs, reply *GetBeneficiaryReply) error {
	account, err := parseAddress(args.Account)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		beneficiary, err := s.vm.state.Escrow().GetBeneficiary(account)
		if err != nil {
			return err
		}
		reply.Votes = cjson.Uint64(beneficiary.Votes)
		reply.Weight = cjson.Uint64(beneficiary.Weight)
		reply.LastUpdate = beneficiary.LastUpdate
		return nil
	})
}
