// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"math/big"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// mulDiv computes a * b / c with a 128-bit intermediate. c must be nonzero.
func mulDiv(a uint64, b uint64, c uint64) uint64 {
	n := new(big.Int).SetUint64(a)
	n.Mul(n, new(big.Int).SetUint64(b))
	n.Div(n, new(big.Int).SetUint64(c))
	return n.Uint64()
}

// ClaimIncentives settles [account] for the current period and mints its
// share of the period's emissions. The epoch is rolled first if due, the
// beneficiary's weight is frozen against the closed period's tally, and a
// second call within the same period mints nothing.
//
//	weight = 10000 * votes / lastPeriodVotes
//	amount = (supply - totalVotes) * expansionFactor / 10000 * weight / 10000
//
// A period with no frozen votes, or a supply entirely locked, settles with
// zero emissions rather than failing.
func (e *Engine) ClaimIncentives(
	ouroborosID uint64,
	account ledger.Address,
	now int64,
) (uint64, error) {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return 0, err
	}
	rolled := o.AdvanceEpoch(now)

	beneficiary, err := e.state.GetBeneficiary(account)
	if err != nil {
		return 0, err
	}

	if beneficiary.LastUpdate >= o.LastPeriod {
		// Already settled for this period.
		if rolled {
			return 0, e.state.PutOuroboros(o)
		}
		return 0, nil
	}

	beneficiary.LastUpdate = o.LastPeriod
	beneficiary.Weight = 0
	if o.LastPeriodVotes > 0 {
		beneficiary.Weight = mulDiv(10000, beneficiary.Votes, o.LastPeriodVotes)
	}

	var amount uint64
	if beneficiary.Weight > 0 {
		mint, err := e.tokens.GetMint(o.Mint)
		if err != nil {
			return 0, err
		}
		if mint.Supply > o.TotalVotes {
			emissions := mulDiv(mint.Supply-o.TotalVotes, o.ExpansionFactor, 10000)
			amount = mulDiv(emissions, beneficiary.Weight, 10000)
		}
	}

	if amount > 0 {
		destination := ledger.AssociatedAccount(beneficiary.Account, o.Mint)
		if _, err := e.tokens.EnsureAccount(destination, o.Mint, beneficiary.Account); err != nil {
			return 0, err
		}
		if err := e.tokens.MintTo(o.Mint, destination, o.Authority, amount); err != nil {
			return 0, err
		}
	}

	if err := e.state.PutBeneficiary(beneficiary); err != nil {
		return 0, err
	}
	return amount, e.state.PutOuroboros(o)
}
