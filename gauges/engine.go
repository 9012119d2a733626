// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package gauges

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
	"github.com/ouroboros-finance/ouroborosvm/pools"
)

// Engine executes gauge instructions against the ledger. Gauges sit on top
// of the pair engine: a gauge stakes one pool's liquidity tokens and accrues
// rewards in one reward mint.
type Engine struct {
	gauges GaugeState
	pairs  pools.PairState
	tokens ledger.TokenState
}

func NewEngine(gauges GaugeState, pairs pools.PairState, tokens ledger.TokenState) *Engine {
	return &Engine{
		gauges: gauges,
		pairs:  pairs,
		tokens: tokens,
	}
}

// CreateGauge initializes the gauge staking [pairID]'s liquidity for rewards
// in [rewardMint]. The receipt mint and the four holding accounts live under
// the derived gauge authority.
func (e *Engine) CreateGauge(pairID ids.ID, rewardMint ledger.Address) (ids.ID, *Gauge, error) {
	pair, err := e.pairs.GetPair(pairID)
	if err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.GetMint(rewardMint); err != nil {
		return ids.Empty, nil, err
	}

	gaugeID := GaugeID(rewardMint, pair.MintA, pair.MintB)
	has, err := e.gauges.HasGauge(gaugeID)
	if err != nil {
		return ids.Empty, nil, err
	}
	if has {
		return ids.Empty, nil, ErrGaugeExists
	}

	gauge := newGauge(pairID, rewardMint, pair.MintA, pair.MintB)
	if _, err := e.tokens.CreateMint(gauge.GaugeMint, gauge.Authority, 0); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(gauge.LiquidityAccount, pair.PairMint, gauge.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(gauge.RewardAccount, rewardMint, gauge.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(gauge.AccountA, pair.MintA, gauge.Authority); err != nil {
		return ids.Empty, nil, err
	}
	if _, err := e.tokens.CreateAccount(gauge.AccountB, pair.MintB, gauge.Authority); err != nil {
		return ids.Empty, nil, err
	}

	return gaugeID, gauge, e.gauges.PutGauge(gaugeID, gauge)
}

// DepositLiquidity stakes [amount] pool shares into the gauge. The provider
// receives gauge receipt tokens one for one and a staker record tracks the
// position; a new staker only earns rewards collected after it entered.
func (e *Engine) DepositLiquidity(
	provider ledger.Address,
	gaugeID ids.ID,
	amount uint64,
) (*Staker, error) {
	if amount == 0 {
		return nil, ErrInsufficientStake
	}
	gauge, err := e.gauges.GetGauge(gaugeID)
	if err != nil {
		return nil, err
	}
	pair, err := e.pairs.GetPair(gauge.Pair)
	if err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(
		ledger.AssociatedAccount(provider, pair.PairMint),
		gauge.LiquidityAccount,
		provider,
		amount,
	); err != nil {
		return nil, err
	}

	receiptAccount := ledger.AssociatedAccount(provider, gauge.GaugeMint)
	if _, err := e.tokens.EnsureAccount(receiptAccount, gauge.GaugeMint, provider); err != nil {
		return nil, err
	}
	if err := e.tokens.MintTo(gauge.GaugeMint, receiptAccount, gauge.Authority, amount); err != nil {
		return nil, err
	}

	staker, err := e.gauges.GetStaker(gaugeID, provider)
	if err == database.ErrNotFound {
		staker = &Staker{
			Owner:       provider,
			Gauge:       gaugeID,
			LastCollect: gauge.CumulativeFees,
		}
	} else if err != nil {
		return nil, err
	}

	deposited, err := safemath.Add64(staker.Deposited, amount)
	if err != nil {
		return nil, err
	}
	staker.Deposited = deposited

	return staker, e.gauges.PutStaker(staker)
}

// CollectRewards mints [amount] reward tokens into the gauge's reward
// account. The caller must be the reward mint's authority; the cumulative
// counter feeds staker entitlement baselines.
func (e *Engine) CollectRewards(
	authority ledger.Address,
	gaugeID ids.ID,
	amount uint64,
) (*Gauge, error) {
	gauge, err := e.gauges.GetGauge(gaugeID)
	if err != nil {
		return nil, err
	}

	if err := e.tokens.MintTo(gauge.MintRewards, gauge.RewardAccount, authority, amount); err != nil {
		return nil, err
	}

	cumulative, err := safemath.Add64(gauge.CumulativeFees, amount)
	if err != nil {
		return nil, err
	}
	gauge.CumulativeFees = cumulative

	return gauge, e.gauges.PutGauge(gaugeID, gauge)
}
