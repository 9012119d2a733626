// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package gauges

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
	"github.com/ouroboros-finance/ouroborosvm/pools"
)

type testEnv struct {
	engine     *Engine
	poolEngine *pools.Engine
	tokens     ledger.TokenState

	authority ledger.Address
	provider  ledger.Address

	pairID     ids.ID
	pair       *pools.Pair
	rewardMint ledger.Address
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)

	db := memdb.New()
	tokens := ledger.NewTokenState(prefixdb.New([]byte("token"), db))
	pairs := pools.NewPairState(prefixdb.New([]byte("pair"), db))

	env := &testEnv{
		engine:     NewEngine(NewGaugeState(prefixdb.New([]byte("gauge"), db)), pairs, tokens),
		poolEngine: pools.NewEngine(pairs, tokens),
		tokens:     tokens,
		authority:  ids.GenerateTestShortID(),
		provider:   ids.GenerateTestShortID(),
		rewardMint: ids.GenerateTestShortID(),
	}

	mintA := ids.GenerateTestShortID()
	mintB := ids.GenerateTestShortID()
	_, err := tokens.CreateMint(mintA, env.authority, 9)
	require.NoError(err)
	_, err = tokens.CreateMint(mintB, env.authority, 9)
	require.NoError(err)
	_, err = tokens.CreateMint(env.rewardMint, env.authority, 9)
	require.NoError(err)

	for _, mint := range []ledger.Address{mintA, mintB} {
		account := ledger.AssociatedAccount(env.provider, mint)
		_, err = tokens.EnsureAccount(account, mint, env.provider)
		require.NoError(err)
		require.NoError(tokens.MintTo(mint, account, env.authority, 10_000_000))
	}

	env.pairID, env.pair, err = env.poolEngine.CreatePair(mintA, mintB, false)
	require.NoError(err)
	_, err = env.poolEngine.AddLiquidity(env.provider, env.pairID, 1_000_000, 1_000_000, 0, 0)
	require.NoError(err)

	return env
}

func (env *testEnv) balance(t *testing.T, owner ledger.Address, mint ledger.Address) uint64 {
	balance, err := env.tokens.Balance(ledger.AssociatedAccount(owner, mint))
	require.NoError(t, err)
	return balance
}

func TestCreateGaugeOnce(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	gaugeID, gauge, err := env.engine.CreateGauge(env.pairID, env.rewardMint)
	require.NoError(err)
	require.Equal(env.pairID, gauge.Pair)
	require.Equal(GaugeID(env.rewardMint, env.pair.MintA, env.pair.MintB), gaugeID)

	_, _, err = env.engine.CreateGauge(env.pairID, env.rewardMint)
	require.Equal(ErrGaugeExists, err)
}

func TestDepositLiquidity(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	gaugeID, gauge, err := env.engine.CreateGauge(env.pairID, env.rewardMint)
	require.NoError(err)

	_, err = env.engine.DepositLiquidity(env.provider, gaugeID, 0)
	require.Equal(ErrInsufficientStake, err)

	shares := env.balance(t, env.provider, env.pair.PairMint)
	require.NotZero(shares)

	staker, err := env.engine.DepositLiquidity(env.provider, gaugeID, shares/2)
	require.NoError(err)
	require.EqualValues(shares/2, staker.Deposited)
	require.Zero(staker.LastCollect)

	// Shares moved into the gauge, receipts minted one for one.
	require.EqualValues(shares-shares/2, env.balance(t, env.provider, env.pair.PairMint))
	require.EqualValues(shares/2, env.balance(t, env.provider, gauge.GaugeMint))
	staked, err := env.tokens.Balance(gauge.LiquidityAccount)
	require.NoError(err)
	require.EqualValues(shares/2, staked)

	// A second deposit grows the same staker record.
	staker, err = env.engine.DepositLiquidity(env.provider, gaugeID, shares/4)
	require.NoError(err)
	require.EqualValues(shares/2+shares/4, staker.Deposited)
}

func TestCollectRewards(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	gaugeID, gauge, err := env.engine.CreateGauge(env.pairID, env.rewardMint)
	require.NoError(err)

	// Only the reward mint's authority can collect.
	_, err = env.engine.CollectRewards(env.provider, gaugeID, 500)
	require.Equal(ledger.ErrWrongAuthority, err)

	gauge, err = env.engine.CollectRewards(env.authority, gaugeID, 500)
	require.NoError(err)
	require.EqualValues(500, gauge.CumulativeFees)

	accrued, err := env.tokens.Balance(gauge.RewardAccount)
	require.NoError(err)
	require.EqualValues(500, accrued)

	gauge, err = env.engine.CollectRewards(env.authority, gaugeID, 250)
	require.NoError(err)
	require.EqualValues(750, gauge.CumulativeFees)

	// A staker entering now is only entitled to rewards collected later.
	shares := env.balance(t, env.provider, env.pair.PairMint)
	staker, err := env.engine.DepositLiquidity(env.provider, gaugeID, shares)
	require.NoError(err)
	require.EqualValues(750, staker.LastCollect)
}
