// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// Engine executes pair instructions against the ledger. It performs no
// commits itself: the caller wraps every operation in an atomic instruction
// and aborts the pending writes on any returned error.
type Engine struct {
	pairs  PairState
	tokens ledger.TokenState
}

func NewEngine(pairs PairState, tokens ledger.TokenState) *Engine {
	return &Engine{
		pairs:  pairs,
		tokens: tokens,
	}
}

// CreatePair initializes an empty pool for the unordered mint pair. Reserve,
// fee, and burner accounts are created under the derived pair authority and
// the liquidity mint starts at zero supply.
func (e *Engine) CreatePair(mintA ledger.Address, mintB ledger.Address, stable bool) (ids.ID, *Pair, error) {
	pairID := PairID(mintA, mintB)
	has, err := e.pairs.HasPair(pairID)
	if err != nil {
		return ids.Empty, nil, err
	}
	if has {
		return ids.Empty, nil, ErrPairExists
	}

	// Both mints must exist before a pool can reference them.
	if _, err := e.tokens.GetMint(mintA); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.GetMint(mintB); err != nil {
		return ids.Empty, nil, err
	}

	pair := newPair(mintA, mintB, stable)
	if _, err := e.tokens.CreateMint(pair.PairMint, pair.Authority, 0); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(pair.AccountA, pair.MintA, pair.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(pair.AccountB, pair.MintB, pair.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(pair.FeesA, pair.MintA, pair.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(pair.FeesB, pair.MintB, pair.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(pair.Burner, pair.PairMint, pair.Authority); err != nil {
		return ids.Empty, nil, err
	}

	return pairID, pair, e.pairs.PutPair(pairID, pair)
}

// reserves reads both pool balances and the share supply.
func (e *Engine) reserves(pair *Pair) (uint64, uint64, uint64, error) {
	reserveA, err := e.tokens.Balance(pair.AccountA)
	if err != nil {
		return 0, 0, 0, err
	}
	reserveB, err := e.tokens.Balance(pair.AccountB)
	if err != nil {
		return 0, 0, 0, err
	}
	mint, err := e.tokens.GetMint(pair.PairMint)
	if err != nil {
		return 0, 0, 0, err
	}
	return reserveA, reserveB, mint.Supply, nil
}
