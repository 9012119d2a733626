// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

type testEnv struct {
	engine *Engine
	tokens ledger.TokenState

	authority ledger.Address
	mintA     ledger.Address
	mintB     ledger.Address
	provider  ledger.Address
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)

	db := memdb.New()
	tokens := ledger.NewTokenState(prefixdb.New([]byte("token"), db))
	pairs := NewPairState(prefixdb.New([]byte("pair"), db))

	env := &testEnv{
		engine:    NewEngine(pairs, tokens),
		tokens:    tokens,
		authority: ids.GenerateTestShortID(),
		mintA:     ids.GenerateTestShortID(),
		mintB:     ids.GenerateTestShortID(),
		provider:  ids.GenerateTestShortID(),
	}
	// Canonical order keeps amountA/amountB assertions stable.
	env.mintA, env.mintB = SortMints(env.mintA, env.mintB)

	_, err := tokens.CreateMint(env.mintA, env.authority, 9)
	require.NoError(err)
	_, err = tokens.CreateMint(env.mintB, env.authority, 9)
	require.NoError(err)

	env.fund(t, env.provider, env.mintA, 100_000_000)
	env.fund(t, env.provider, env.mintB, 100_000_000)
	return env
}

func (env *testEnv) fund(t *testing.T, owner ledger.Address, mint ledger.Address, amount uint64) {
	require := require.New(t)
	account := ledger.AssociatedAccount(owner, mint)
	_, err := env.tokens.EnsureAccount(account, mint, owner)
	require.NoError(err)
	require.NoError(env.tokens.MintTo(mint, account, env.authority, amount))
}

func (env *testEnv) balance(t *testing.T, owner ledger.Address, mint ledger.Address) uint64 {
	balance, err := env.tokens.Balance(ledger.AssociatedAccount(owner, mint))
	require.NoError(t, err)
	return balance
}

func TestCreatePairOnce(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, pair, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)
	require.Equal(env.mintA, pair.MintA)
	require.Equal(env.mintB, pair.MintB)

	// The same unordered pair cannot be created twice, in either order.
	_, _, err = env.engine.CreatePair(env.mintB, env.mintA, false)
	require.Equal(ErrPairExists, err)
	require.Equal(pairID, PairID(env.mintB, env.mintA))
}

func TestAddLiquidityBootstrap(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, pair, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)

	// sqrt(1000*1000) == MinimumLiquidity: nothing left for the provider.
	_, err = env.engine.AddLiquidity(env.provider, pairID, 1000, 1000, 0, 0)
	require.Equal(ErrInsufficientLiquidityMinted, err)

	result, err := env.engine.AddLiquidity(env.provider, pairID, 1_000_000, 1_000_000, 0, 0)
	require.NoError(err)
	require.EqualValues(1_000_000, result.AmountA)
	require.EqualValues(1_000_000, result.AmountB)
	require.EqualValues(1_000_000-MinimumLiquidity, result.Liquidity)

	require.EqualValues(result.Liquidity, env.balance(t, env.provider, pair.PairMint))
	burned, err := env.tokens.Balance(pair.Burner)
	require.NoError(err)
	require.EqualValues(MinimumLiquidity, burned)

	mint, err := env.tokens.GetMint(pair.PairMint)
	require.NoError(err)
	require.EqualValues(1_000_000, mint.Supply)
}

func TestAddLiquidityQuoted(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, _, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)
	_, err = env.engine.AddLiquidity(env.provider, pairID, 2_000_000, 1_000_000, 0, 0)
	require.NoError(err)

	// Ratio is 2:1. Matching desiredA solves B = desiredA/2.
	result, err := env.engine.AddLiquidity(env.provider, pairID, 100_000, 100_000, 0, 0)
	require.NoError(err)
	require.EqualValues(100_000, result.AmountA)
	require.EqualValues(50_000, result.AmountB)

	// The solved B violating the caller minimum is rejected.
	_, err = env.engine.AddLiquidity(env.provider, pairID, 100_000, 100_000, 0, 60_000)
	require.Equal(ErrInsufficientAmount, err)

	// Quoted B overshooting desiredB falls back to solving for A.
	result, err = env.engine.AddLiquidity(env.provider, pairID, 100_000, 40_000, 0, 0)
	require.NoError(err)
	require.EqualValues(80_000, result.AmountA)
	require.EqualValues(40_000, result.AmountB)

	_, err = env.engine.AddLiquidity(env.provider, pairID, 0, 40_000, 0, 0)
	require.Equal(ErrInsufficientAmount, err)
}

func TestRemoveLiquidityRoundTrip(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, pair, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)
	added, err := env.engine.AddLiquidity(env.provider, pairID, 4_000_000, 1_000_000, 0, 0)
	require.NoError(err)

	beforeA := env.balance(t, env.provider, env.mintA)
	beforeB := env.balance(t, env.provider, env.mintB)

	removed, err := env.engine.RemoveLiquidity(env.provider, pairID, added.Liquidity)
	require.NoError(err)

	// Immediately after the deposit the burner's share is the only loss;
	// payouts match the deposit within integer rounding.
	require.InDelta(4_000_000, float64(removed.AmountA), 4_000_000*float64(MinimumLiquidity)/2_000_000+1)
	require.InDelta(1_000_000, float64(removed.AmountB), 1_000_000*float64(MinimumLiquidity)/2_000_000+1)
	require.EqualValues(beforeA+removed.AmountA, env.balance(t, env.provider, env.mintA))
	require.EqualValues(beforeB+removed.AmountB, env.balance(t, env.provider, env.mintB))
	require.Zero(env.balance(t, env.provider, pair.PairMint))
}

func TestSwapExactInput(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, pair, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)
	_, err = env.engine.AddLiquidity(env.provider, pairID, 1_000_000, 1_000_000, 0, 0)
	require.NoError(err)

	_, err = env.engine.SwapExactInput(env.provider, pairID, 0, 0, 0, 0)
	require.Equal(ErrInsufficientInput, err)

	_, err = env.engine.SwapExactInput(env.provider, pairID, 1000, 0, 0, 2_000_000)
	require.Equal(ErrInsufficientLiquidity, err)

	beforeB := env.balance(t, env.provider, env.mintB)
	result, err := env.engine.SwapExactInput(env.provider, pairID, 1000, 0, 0, 0)
	require.NoError(err)
	require.EqualValues(998, result.AmountOutB)
	require.Zero(result.AmountOutA)
	require.EqualValues(beforeB+998, env.balance(t, env.provider, env.mintB))

	// The 0.1% skim landed on the fee account.
	feeBalance, err := env.tokens.Balance(pair.FeesA)
	require.NoError(err)
	require.EqualValues(1, feeBalance)

	// Fees keep the product non-decreasing across many swaps.
	productBefore := k(1_000_999, 9, 999_002, 9, false)
	for i := 0; i < 10; i++ {
		_, err = env.engine.SwapExactInput(env.provider, pairID, 50_000, 0, 0, 0)
		require.NoError(err)
		_, err = env.engine.SwapExactInput(env.provider, pairID, 0, 30_000, 0, 0)
		require.NoError(err)
	}
	reserveA, err := env.tokens.Balance(pair.AccountA)
	require.NoError(err)
	reserveB, err := env.tokens.Balance(pair.AccountB)
	require.NoError(err)
	productAfter := k(reserveA, 9, reserveB, 9, false)
	require.True(productAfter.Cmp(productBefore) >= 0)
}

func TestSwapBidirectional(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, _, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)
	_, err = env.engine.AddLiquidity(env.provider, pairID, 10_000_000, 10_000_000, 0, 0)
	require.NoError(err)

	// Both legs nonzero in one call: each prices against the pre-swap
	// reserves of the opposite side.
	result, err := env.engine.SwapExactInput(env.provider, pairID, 10_000, 5_000, 0, 0)
	require.NoError(err)
	require.EqualValues(getAmountOut(5_000, 10_000_000, 10_000_000), result.AmountOutA)
	require.EqualValues(getAmountOut(10_000, 10_000_000, 10_000_000), result.AmountOutB)
}

func TestClaimFeesSweepsWholePot(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, pair, err := env.engine.CreatePair(env.mintA, env.mintB, false)
	require.NoError(err)
	_, err = env.engine.AddLiquidity(env.provider, pairID, 10_000_000, 10_000_000, 0, 0)
	require.NoError(err)
	_, err = env.engine.SwapExactInput(env.provider, pairID, 100_000, 0, 0, 0)
	require.NoError(err)

	// Any caller drains the whole pot, proportional to nothing. This pins
	// the documented upstream behavior rather than endorsing it.
	stranger := ids.GenerateTestShortID()
	result, err := env.engine.ClaimFees(stranger, pairID)
	require.NoError(err)
	require.EqualValues(100, result.AmountA)
	require.EqualValues(100, env.balance(t, stranger, env.mintA))

	feeBalance, err := env.tokens.Balance(pair.FeesA)
	require.NoError(err)
	require.Zero(feeBalance)
}

func TestStableSwapInvariant(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	pairID, _, err := env.engine.CreatePair(env.mintA, env.mintB, true)
	require.NoError(err)
	_, err = env.engine.AddLiquidity(env.provider, pairID, 10_000_000, 10_000_000, 0, 0)
	require.NoError(err)

	result, err := env.engine.SwapExactInput(env.provider, pairID, 10_000, 0, 0, 0)
	require.NoError(err)
	require.Positive(result.AmountOutB)
}
