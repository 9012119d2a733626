// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

var (
	authoritySeed = []byte("authority")
	mintSeed      = []byte("mint")
)

// Ouroboros is the emission schedule and vote tally for one escrow instance.
// Time is divided into fixed periods; emissions for a period are distributed
// against the vote distribution frozen when the period closed.
type Ouroboros struct {
	// Unique identifier, also the derivation seed for the authority and
	// the native mint.
	ID uint64 `serialize:"true"`

	// The authority over the native mint and every escrow account.
	Authority ledger.Address `serialize:"true"`

	// The mint of the token distributed to stakers.
	Mint ledger.Address `serialize:"true"`

	// Length of an emission period in seconds.
	Period uint64 `serialize:"true"`

	// Start of the most recently closed period.
	LastPeriod int64 `serialize:"true"`

	// The vote tally frozen when the last period closed. Emission weights
	// for the current period are computed against this value.
	LastPeriodVotes uint64 `serialize:"true"`

	// The live vote tally. Changes as votes are initialized and released.
	TotalVotes uint64 `serialize:"true"`

	// Per-period emission rate over the unlocked supply, in basis points.
	ExpansionFactor uint64 `serialize:"true"`

	// Vote multiplier per week locked, in basis points.
	TimeMultiplier uint64 `serialize:"true"`
}

// AuthorityAddress derives the authority for the ouroboros [id].
func AuthorityAddress(id uint64) ledger.Address {
	return ledger.DeriveAuthority(authoritySeed, ledger.Uint64Seed(id))
}

// MintAddress derives the native mint for the ouroboros [id].
func MintAddress(id uint64) ledger.Address {
	return ledger.DeriveAuthority(mintSeed, ledger.Uint64Seed(id))
}

// AdvanceEpoch closes the current period if [now] has reached its end. The
// schedule advances a single step and freezes the live tally as the closed
// period's tally. Calling again within the same period is a no-op, which is
// what makes every epoch-rolling instruction idempotent with respect to the
// schedule.
func (o *Ouroboros) AdvanceEpoch(now int64) bool {
	if now < o.LastPeriod+int64(o.Period) {
		return false
	}
	o.LastPeriod += int64(o.Period)
	o.LastPeriodVotes = o.TotalVotes
	return true
}
