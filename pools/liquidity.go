// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// AddLiquidityResult reports what a deposit actually moved and minted.
type AddLiquidityResult struct {
	AmountA   uint64
	AmountB   uint64
	Liquidity uint64
}

// AddLiquidity deposits both sides at the pool ratio and mints proportional
// pool shares to [provider].
//
// On an empty pool the desired amounts are accepted as-is and bootstrap the
// price; the first sqrt(a*b) shares are minted minus MinimumLiquidity, which
// goes to the burner account instead. On a live pool the optimal counter
// amount is solved with quote(), preferring to match desiredA exactly and
// falling back to solving for A when the quoted B overshoots desiredB.
func (e *Engine) AddLiquidity(
	provider ledger.Address,
	pairID ids.ID,
	desiredA uint64,
	desiredB uint64,
	minA uint64,
	minB uint64,
) (*AddLiquidityResult, error) {
	pair, err := e.pairs.GetPair(pairID)
	if err != nil {
		return nil, err
	}
	reserveA, reserveB, supply, err := e.reserves(pair)
	if err != nil {
		return nil, err
	}

	var amountA, amountB uint64
	if reserveA == 0 && reserveB == 0 {
		amountA, amountB = desiredA, desiredB
	} else {
		if desiredA == 0 {
			return nil, ErrInsufficientAmount
		}
		amountBOptimal := quote(desiredA, reserveA, reserveB)
		if amountBOptimal <= desiredB {
			if amountBOptimal < minB {
				return nil, ErrInsufficientAmount
			}
			amountA, amountB = desiredA, amountBOptimal
		} else {
			amountAOptimal := quote(desiredB, reserveB, reserveA)
			if amountAOptimal < minA {
				return nil, ErrInsufficientAmount
			}
			amountA, amountB = amountAOptimal, desiredB
		}
	}

	if err := e.tokens.Transfer(ledger.AssociatedAccount(provider, pair.MintA), pair.AccountA, provider, amountA); err != nil {
		return nil, err
	}
	if err := e.tokens.Transfer(ledger.AssociatedAccount(provider, pair.MintB), pair.AccountB, provider, amountB); err != nil {
		return nil, err
	}

	var liquidity uint64
	bootstrap := supply == 0
	if bootstrap {
		root := sqrt(amountA, amountB)
		if root < MinimumLiquidity {
			return nil, ErrInsufficientLiquidityMinted
		}
		liquidity = root - MinimumLiquidity
	} else {
		lhs := mulDiv(amountA, supply, reserveA)
		rhs := mulDiv(amountB, supply, reserveB)
		if lhs > rhs {
			liquidity = rhs
		} else {
			liquidity = lhs
		}
	}
	if liquidity == 0 {
		return nil, ErrInsufficientLiquidityMinted
	}

	providerAccount := ledger.AssociatedAccount(provider, pair.PairMint)
	if _, err := e.tokens.EnsureAccount(providerAccount, pair.PairMint, provider); err != nil {
		return nil, err
	}
	if err := e.tokens.MintTo(pair.PairMint, providerAccount, pair.Authority, liquidity); err != nil {
		return nil, err
	}
	if bootstrap {
		if err := e.tokens.MintTo(pair.PairMint, pair.Burner, pair.Authority, MinimumLiquidity); err != nil {
			return nil, err
		}
	}

	return &AddLiquidityResult{
		AmountA:   amountA,
		AmountB:   amountB,
		Liquidity: liquidity,
	}, nil
}

// RemoveLiquidityResult reports the amounts returned for the burned shares.
type RemoveLiquidityResult struct {
	AmountA uint64
	AmountB uint64
}

// RemoveLiquidity burns [liquidity] pool shares held by [provider] and pays
// out the proportional part of both reserves. There is no minimum-output
// check: the caller bears any ratio movement between quote and execution.
func (e *Engine) RemoveLiquidity(
	provider ledger.Address,
	pairID ids.ID,
	liquidity uint64,
) (*RemoveLiquidityResult, error) {
	pair, err := e.pairs.GetPair(pairID)
	if err != nil {
		return nil, err
	}
	reserveA, reserveB, supply, err := e.reserves(pair)
	if err != nil {
		return nil, err
	}
	if supply == 0 {
		return nil, ErrInsufficientLiquidity
	}

	amountA := mulDiv(liquidity, reserveA, supply)
	amountB := mulDiv(liquidity, reserveB, supply)

	accountA := ledger.AssociatedAccount(provider, pair.MintA)
	if _, err := e.tokens.EnsureAccount(accountA, pair.MintA, provider); err != nil {
		return nil, err
	}
	accountB := ledger.AssociatedAccount(provider, pair.MintB)
	if _, err := e.tokens.EnsureAccount(accountB, pair.MintB, provider); err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(pair.AccountA, accountA, pair.Authority, amountA); err != nil {
		return nil, err
	}
	if err := e.tokens.Transfer(pair.AccountB, accountB, pair.Authority, amountB); err != nil {
		return nil, err
	}
	if err := e.tokens.Burn(pair.PairMint, ledger.AssociatedAccount(provider, pair.PairMint), provider, liquidity); err != nil {
		return nil, err
	}

	return &RemoveLiquidityResult{AmountA: amountA, AmountB: amountB}, nil
}
