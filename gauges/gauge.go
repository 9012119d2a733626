// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package gauges

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

var (
	gaugeSeed            = []byte("gauge")
	authoritySeed        = []byte("authority")
	mintSeed             = []byte("mint")
	liquidityAccountSeed = []byte("liquidity_account")
	rewardAccountSeed    = []byte("reward_account")
	accountASeed         = []byte("account_a")
	accountBSeed         = []byte("account_b")
)

// Gauge routes staked pool liquidity toward emission rewards. Providers
// deposit their pool shares and receive gauge receipt tokens one for one;
// reward tokens accumulate in the gauge's reward account.
type Gauge struct {
	// The pool whose liquidity this gauge stakes.
	Pair ids.ID `serialize:"true"`

	// The mint rewards are paid in.
	MintRewards ledger.Address `serialize:"true"`

	// The receipt mint for staked liquidity.
	GaugeMint ledger.Address `serialize:"true"`

	// The authority over the gauge mint and every holding account.
	Authority ledger.Address `serialize:"true"`

	// Staked pool shares.
	LiquidityAccount ledger.Address `serialize:"true"`

	// Accrued rewards waiting for distribution.
	RewardAccount ledger.Address `serialize:"true"`

	// Holding accounts for the pair's two underlying tokens.
	AccountA ledger.Address `serialize:"true"`
	AccountB ledger.Address `serialize:"true"`

	// Total rewards ever collected into this gauge.
	CumulativeFees uint64 `serialize:"true"`
}

// Staker records one provider's position in a gauge.
type Staker struct {
	Owner ledger.Address `serialize:"true"`
	Gauge ids.ID         `serialize:"true"`

	// Pool shares deposited.
	Deposited uint64 `serialize:"true"`

	// The gauge's cumulative fees when this staker last entered. Deposits
	// only earn rewards collected after them.
	LastCollect uint64 `serialize:"true"`
}

// GaugeID is the deterministic identity of the gauge staking the pool of
// (mintA, mintB) for rewards in [rewardMint].
func GaugeID(rewardMint ledger.Address, mintA ledger.Address, mintB ledger.Address) ids.ID {
	buf := make([]byte, 0, len(gaugeSeed)+3*len(rewardMint))
	buf = append(buf, gaugeSeed...)
	buf = append(buf, rewardMint[:]...)
	buf = append(buf, mintA[:]...)
	buf = append(buf, mintB[:]...)
	return hashing.ComputeHash256Array(buf)
}

func newGauge(pairID ids.ID, rewardMint ledger.Address, mintA ledger.Address, mintB ledger.Address) *Gauge {
	seeds := [][]byte{rewardMint[:], mintA[:], mintB[:]}
	derive := func(seed []byte) ledger.Address {
		return ledger.DeriveAuthority(append([][]byte{seed}, seeds...)...)
	}
	return &Gauge{
		Pair:             pairID,
		MintRewards:      rewardMint,
		GaugeMint:        derive(mintSeed),
		Authority:        derive(authoritySeed),
		LiquidityAccount: derive(liquidityAccountSeed),
		RewardAccount:    derive(rewardAccountSeed),
		AccountA:         derive(accountASeed),
		AccountB:         derive(accountBSeed),
	}
}
