// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// SwapResult reports both output legs of an exact-input swap.
type SwapResult struct {
	AmountOutA uint64
	AmountOutB uint64
}

// SwapExactInput swaps exact input amounts on one or both sides in a single
// call. A flat 0.1% of each input is skimmed to the pair's fee account
// before the remainder enters the reserves; the pricing formula then applies
// its own 0.1% fee on top. Outputs are priced off the reserves as they stood
// before the inputs arrived, and the invariant k must not decrease between
// the pre-swap reserves and the post-swap reserves or the whole instruction
// fails with ErrInvariantK.
func (e *Engine) SwapExactInput(
	swapper ledger.Address,
	pairID ids.ID,
	amountInA uint64,
	amountInB uint64,
	minOutA uint64,
	minOutB uint64,
) (*SwapResult, error) {
	if amountInA == 0 && amountInB == 0 {
		return nil, ErrInsufficientInput
	}

	pair, err := e.pairs.GetPair(pairID)
	if err != nil {
		return nil, err
	}
	reserveA, err := e.tokens.Balance(pair.AccountA)
	if err != nil {
		return nil, err
	}
	reserveB, err := e.tokens.Balance(pair.AccountB)
	if err != nil {
		return nil, err
	}

	if minOutA > reserveA || minOutB > reserveB {
		return nil, ErrInsufficientLiquidity
	}

	mintA, err := e.tokens.GetMint(pair.MintA)
	if err != nil {
		return nil, err
	}
	mintB, err := e.tokens.GetMint(pair.MintB)
	if err != nil {
		return nil, err
	}

	swapperA := ledger.AssociatedAccount(swapper, pair.MintA)
	swapperB := ledger.AssociatedAccount(swapper, pair.MintB)
	if _, err := e.tokens.EnsureAccount(swapperA, pair.MintA, swapper); err != nil {
		return nil, err
	}
	if _, err := e.tokens.EnsureAccount(swapperB, pair.MintB, swapper); err != nil {
		return nil, err
	}

	// Move the inputs in, skimming the flat fee.
	if amountInA > 0 {
		if err := e.tokens.Transfer(swapperA, pair.AccountA, swapper, amountInA-amountInA/1000); err != nil {
			return nil, err
		}
		if err := e.tokens.Transfer(swapperA, pair.FeesA, swapper, amountInA/1000); err != nil {
			return nil, err
		}
	}
	if amountInB > 0 {
		if err := e.tokens.Transfer(swapperB, pair.AccountB, swapper, amountInB-amountInB/1000); err != nil {
			return nil, err
		}
		if err := e.tokens.Transfer(swapperB, pair.FeesB, swapper, amountInB/1000); err != nil {
			return nil, err
		}
	}

	amountOutA := getAmountOut(amountInB, reserveB, reserveA)
	amountOutB := getAmountOut(amountInA, reserveA, reserveB)

	if amountOutA > 0 {
		if err := e.tokens.Transfer(pair.AccountA, swapperA, pair.Authority, amountOutA); err != nil {
			return nil, err
		}
	}
	if amountOutB > 0 {
		if err := e.tokens.Transfer(pair.AccountB, swapperB, pair.Authority, amountOutB); err != nil {
			return nil, err
		}
	}

	newReserveA := reserveA - amountOutA
	newReserveB := reserveB - amountOutB

	kAfter := k(
		newReserveA+amountInA-amountInA/1000,
		mintA.Decimals,
		newReserveB+amountInB-amountInB/1000,
		mintB.Decimals,
		pair.Stable,
	)
	kBefore := k(reserveA, mintA.Decimals, reserveB, mintB.Decimals, pair.Stable)
	if kAfter.Cmp(kBefore) < 0 {
		return nil, ErrInvariantK
	}

	return &SwapResult{AmountOutA: amountOutA, AmountOutB: amountOutB}, nil
}

// ClaimFeesResult reports the swept fee balances.
type ClaimFeesResult struct {
	AmountA uint64
	AmountB uint64
}

// ClaimFees sweeps the entire accumulated balance of both fee accounts to
// the caller. There is no proportional entitlement: whichever liquidity
// provider calls first drains the pot. Kept exactly as designed upstream.
func (e *Engine) ClaimFees(provider ledger.Address, pairID ids.ID) (*ClaimFeesResult, error) {
	pair, err := e.pairs.GetPair(pairID)
	if err != nil {
		return nil, err
	}
	feesA, err := e.tokens.Balance(pair.FeesA)
	if err != nil {
		return nil, err
	}
	feesB, err := e.tokens.Balance(pair.FeesB)
	if err != nil {
		return nil, err
	}

	accountA := ledger.AssociatedAccount(provider, pair.MintA)
	if _, err := e.tokens.EnsureAccount(accountA, pair.MintA, provider); err != nil {
		return nil, err
	}
	accountB := ledger.AssociatedAccount(provider, pair.MintB)
	if _, err := e.tokens.EnsureAccount(accountB, pair.MintB, provider); err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(pair.FeesA, accountA, pair.Authority, feesA); err != nil {
		return nil, err
	}
	if err := e.tokens.Transfer(pair.FeesB, accountB, pair.Authority, feesB); err != nil {
		return nil, err
	}

	return &ClaimFeesResult{AmountA: feesA, AmountB: feesB}, nil
}
