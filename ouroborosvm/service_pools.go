// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// PoolsService exposes the automated-market-maker pairs.
type PoolsService struct {
	vm *VM
}

// CreatePairArgs are the arguments to CreatePair
type CreatePairArgs struct {
	MintA  string `json:"mintA"`
	MintB  string `json:"mintB"`
	Stable bool   `json:"stable"`
}

// CreatePairReply is the reply from CreatePair
type CreatePairReply struct {
	PairID ids.ID `json:"pairID"`
}

// CreatePair creates the pool over the two mints. The pair identity is
// independent of argument order.
func (s *PoolsService) CreatePair(_ *http.Request, args *CreatePairArgs, reply *CreatePairReply) error {
	mintA, err := parseAddress(args.MintA)
	if err != nil {
		return err
	}
	mintB, err := parseAddress(args.MintB)
	if err != nil {
		return err
	}
	return s.vm.run("pools.createPair", func() error {
		pairID, _, err := s.vm.pools.CreatePair(mintA, mintB, args.Stable)
		if err != nil {
			return err
		}
		reply.PairID = pairID
		return nil
	})
}

// AddLiquidityArgs are the arguments to AddLiquidity
type AddLiquidityArgs struct {
	Provider string       `json:"provider"`
	PairID   ids.ID       `json:"pairID"`
	DesiredA cjson.Uint64 `json:"desiredA"`
	DesiredB cjson.Uint64 `json:"desiredB"`
	MinA     cjson.Uint64 `json:"minA"`
	MinB     cjson.Uint64 `json:"minB"`
}

// AddLiquidityReply is the reply from AddLiquidity
type AddLiquidityReply struct {
	AmountA   cjson.Uint64 `json:"amountA"`
	AmountB   cjson.Uint64 `json:"amountB"`
	Liquidity cjson.Uint64 `json:"liquidity"`
}

// AddLiquidity deposits both sides at the pool ratio and mints pool shares
// to the provider.
func (s *PoolsService) AddLiquidity(_ *http.Request, args *AddLiquidityArgs, reply *AddLiquidityReply) error {
	provider, err := parseAddress(args.Provider)
	if err != nil {
		return err
	}
	return s.vm.run("pools.addLiquidity", func() error {
		result, err := s.vm.pools.AddLiquidity(
			provider,
			args.PairID,
			uint64(args.DesiredA),
			uint64(args.DesiredB),
			uint64(args.MinA),
			uint64(args.MinB),
		)
		if err != nil {
			return err
		}
		reply.AmountA = cjson.Uint64(result.AmountA)
		reply.AmountB = cjson.Uint64(result.AmountB)
		reply.Liquidity = cjson.Uint64(result.Liquidity)
		return nil
	})
}

// RemoveLiquidityArgs are the arguments to RemoveLiquidity
type RemoveLiquidityArgs struct {
	Provider  string       `json:"provider"`
	PairID    ids.ID       `json:"pairID"`
	Liquidity cjson.Uint64 `json:"liquidity"`
}

// RemoveLiquidityReply is the reply from RemoveLiquidity
type RemoveLiquidityReply struct {
	AmountA cjson.Uint64 `json:"amountA"`
	AmountB cjson.Uint64 `json:"amountB"`
}

// RemoveLiquidity burns pool shares and pays out the proportional part of
// both reserves.
func (s *PoolsService) RemoveLiquidity(_ *http.Request, args *RemoveLiquidityArgs, reply *RemoveLiquidityReply) error {
	provider, err := parseAddress(args.Provider)
	if err != nil {
		return err
	}
	return s.vm.run("pools.removeLiquidity", func() error {
		result, err := s.vm.pools.RemoveLiquidity(provider, args.PairID, uint64(args.Liquidity))
		if err != nil {
			return err
		}
		reply.AmountA = cjson.Uint64(result.AmountA)
		reply.AmountB = cjson.Uint64(result.AmountB)
		return nil
	})
}

// SwapArgs are the arguments to Swap
type SwapArgs struct {
	Swapper   string       `json:"swapper"`
	PairID    ids.ID       `json:"pairID"`
	AmountInA cjson.Uint64 `json:"amountInA"`
	AmountInB cjson.Uint64 `json:"amountInB"`
	MinOutA   cjson.Uint64 `json:"minOutA"`
	MinOutB   cjson.Uint64 `json:"minOutB"`
}

// SwapReply is the reply from Swap
type SwapReply struct {
	AmountOutA cjson.Uint64 `json:"amountOutA"`
	AmountOutB cjson.Uint64 `json:"amountOutB"`
}

// Swap trades exact input amounts on one or both sides in a single
// instruction.
func (s *PoolsService) Swap(_ *http.Request, args *SwapArgs, reply *SwapReply) error {
	swapper, err := parseAddress(args.Swapper)
	if err != nil {
		return err
	}
	return s.vm.run("pools.swap", func() error {
		result, err := s.vm.pools.SwapExactInput(
			swapper,
			args.PairID,
			uint64(args.AmountInA),
			uint64(args.AmountInB),
			uint64(args.MinOutA),
			uint64(args.MinOutB),
		)
		if err != nil {
			return err
		}
		reply.AmountOutA = cjson.Uint64(result.AmountOutA)
		reply.AmountOutB = cjson.Uint64(result.AmountOutB)
		return nil
	})
}

// ClaimFeesArgs are the arguments to ClaimFees
type ClaimFeesArgs struct {
	Provider string `json:"provider"`
	PairID   ids.ID `json:"pairID"`
}

// ClaimFeesReply is the reply from ClaimFees
type ClaimFeesReply struct {
	AmountA cjson.Uint64 `json:"amountA"`
	AmountB cjson.Uint64 `json:"amountB"`
}

// ClaimFees sweeps the accumulated swap fees of both sides to the caller.
func (s *PoolsService) ClaimFees(_ *http.Request, args *ClaimFeesArgs, reply *ClaimFeesReply) error {
	provider, err := parseAddress(args.Provider)
	if err != nil {
		return err
	}
	return s.vm.run("pools.claimFees", func() error {
		result, err := s.vm.pools.ClaimFees(provider, args.PairID)
		if err != nil {
			return err
		}
		reply.AmountA = cjson.Uint64(result.AmountA)
		reply.AmountB = cjson.Uint64(result.AmountB)
		return nil
	})
}

// GetPairArgs are the arguments to GetPair
type GetPairArgs struct {
	PairID ids.ID `json:"pairID"`
}

// GetPairReply is the reply from GetPair
type GetPairReply struct {
	MintA    string       `json:"mintA"`
	MintB    string       `json:"mintB"`
	Stable   bool         `json:"stable"`
	ReserveA cjson.Uint64 `json:"reserveA"`
	ReserveB cjson.Uint64 `json:"reserveB"`
	Supply   cjson.Uint64 `json:"supply"`
}

// GetPair returns the pair's mints, current reserves and pool share supply.
func (s *PoolsService) GetPair(_ *http.Request, args *GetPairArgs, reply *GetPairReply) error {
	return s.vm.view(func() error {
		pair, err := s.vm.state.Pairs().GetPair(args.PairID)
		if err != nil {
			return err
		}
		reserveA, err := s.vm.state.Tokens().Balance(pair.AccountA)
		if err != nil {
			return err
		}
		reserveB, err := s.vm.state.Tokens().Balance(pair.AccountB)
		if err != nil {
			return err
		}
		pairMint, err := s.vm.state.Tokens().GetMint(pair.PairMint)
		if err != nil {
			return err
		}
		reply.MintA = pair.MintA.String()
		reply.MintB = pair.MintB.String()
		reply.Stable = pair.Stable
		reply.ReserveA = cjson.Uint64(reserveA)
		reply.ReserveB = cjson.Uint64(reserveB)
		reply.Supply = cjson.Uint64(pairMint.Supply)
		return nil
	})
}
