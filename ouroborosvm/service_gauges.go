// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// GaugesService exposes the liquidity gauges.
type GaugesService struct {
	vm *VM
}

// CreateGaugeArgs are the arguments to CreateGauge
type CreateGaugeArgs struct {
	PairID     ids.ID `json:"pairID"`
	RewardMint string `json:"rewardMint"`
}

// CreateGaugeReply is the reply from CreateGauge
type CreateGaugeReply struct {
	GaugeID ids.ID `json:"gaugeID"`
}

// CreateGauge creates the gauge staking the pair's pool shares for rewards
// in [rewardMint].
func (s *GaugesService) CreateGauge(_ *http.Request, args *CreateGaugeArgs, reply *CreateGaugeReply) error {
	rewardMint, err := parseAddress(args.RewardMint)
	if err != nil {
		return err
	}
	return s.vm.run("gauges.createGauge", func() error {
		gaugeID, _, err := s.vm.gauges.CreateGauge(args.PairID, rewardMint)
		if err != nil {
			return err
		}
		reply.GaugeID = gaugeID
		return nil
	})
}

// DepositLiquidityArgs are the arguments to DepositLiquidity
type DepositLiquidityArgs struct {
	Provider string       `json:"provider"`
	GaugeID  ids.ID       `json:"gaugeID"`
	Amount   cjson.Uint64 `json:"amount"`
}

// DepositLiquidityReply is the reply from DepositLiquidity
type DepositLiquidityReply struct {
	Deposited   cjson.Uint64 `json:"deposited"`
	LastCollect cjson.Uint64 `json:"lastCollect"`
}

// DepositLiquidity stakes pool shares into the gauge and mints receipts 1:1.
func (s *GaugesService) DepositLiquidity(_ *http.Request, args *DepositLiquidityArgs, reply *DepositLiquidityReply) error {
	provider, err := parseAddress(args.Provider)
	if err != nil {
		return err
	}
	return s.vm.run("gauges.depositLiquidity", func() error {
		staker, err := s.vm.gauges.DepositLiquidity(provider, args.GaugeID, uint64(args.Amount))
		if err != nil {
			return err
		}
		reply.Deposited = cjson.Uint64(staker.Deposited)
		reply.LastCollect = cjson.Uint64(staker.LastCollect)
		return nil
	})
}

// CollectRewardsArgs are the arguments to CollectRewards
type CollectRewardsArgs struct {
	Authority string       `json:"authority"`
	GaugeID   ids.ID       `json:"gaugeID"`
	Amount    cjson.Uint64 `json:"amount"`
}

// CollectRewardsReply is the reply from CollectRewards
type CollectRewardsReply struct {
	CumulativeFees cjson.Uint64 `json:"cumulativeFees"`
}

// CollectRewards mints rewards into the gauge's reward account. Only the
// reward mint's authority can call this.
func (s *GaugesService) CollectRewards(_ *http.Request, args *CollectRewardsArgs, reply *CollectRewardsReply) error {
	authority, err := parseAddress(args.Authority)
	if err != nil {
		return err
	}
	return s.vm.run("gauges.collectRewards", func() error {
		gauge, err := s.vm.gauges.CollectRewards(authority, args.GaugeID, uint64(args.Amount))
		if err != nil {
			return err
		}
		reply.CumulativeFees = cjson.Uint64(gauge.CumulativeFees)
		return nil
	})
}

// GetGaugeArgs are the arguments to GetGauge
type GetGaugeArgs struct {
	GaugeID ids.ID `json:"gaugeID"`
}

// GetGaugeReply is the reply from GetGauge
type GetGaugeReply struct {
	Pair           ids.ID       `json:"pair"`
	RewardMint     string       `json:"rewardMint"`
	GaugeMint      string       `json:"gaugeMint"`
	CumulativeFees cjson.Uint64 `json:"cumulativeFees"`
	Staked         cjson.Uint64 `json:"staked"`
}

// GetGauge returns the gauge's configuration, cumulative rewards, and the
// total pool shares currently staked.
func (s *GaugesService) GetGauge(_ *http.Request, args *GetGaugeArgs, reply *GetGaugeReply) error {
	return s.vm.view(func() error {
		gauge, err := s.vm.state.Gauges().GetGauge(args.GaugeID)
		if err != nil {
			return err
		}
		staked, err := s.vm.state.Tokens().Balance(gauge.LiquidityAccount)
		if err != nil {
			return err
		}
		reply.Pair = gauge.Pair
		reply.RewardMint = gauge.MintRewards.String()
		reply.GaugeMint = gauge.GaugeMint.String()
		reply.CumulativeFees = cjson.Uint64(gauge.CumulativeFees)
		reply.Staked = cjson.Uint64(staked)
		return nil
	})
}

// GetStakerArgs are the arguments to GetStaker
type GetStakerArgs struct {
	GaugeID ids.ID `json:"gaugeID"`
	Owner   string `json:"owner"`
}

// GetStakerReply is the reply from GetStaker
type GetStakerReply struct {
	Deposited   cjson.Uint64 `json:"deposited"`
	LastCollect cjson.Uint64 `json:"lastCollect"`
}

// GetStaker returns the owner's stake in the gauge.
func (s *GaugesService) GetStaker(_ *http.Request, args *GetStakerArgs, reply *GetStakerReply) error {
	owner, err := parseAddress(args.Owner)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		staker, err := s.vm.state.Gauges().GetStaker(args.GaugeID, owner)
		if err != nil {
			return err
		}
		reply.Deposited = cjson.Uint64(staker.Deposited)
		reply.LastCollect = cjson.Uint64(staker.LastCollect)
		return nil
	})
}
