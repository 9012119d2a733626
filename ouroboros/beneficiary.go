// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// Beneficiary is a destination for emissions, weighted by the votes locked
// behind it. A beneficiary is settled for an epoch once LastUpdate has caught
// up with the schedule's LastPeriod; vote moves are rejected while it lags.
type Beneficiary struct {
	// The account receiving incentives.
	Account ledger.Address `serialize:"true"`

	// The number of locked votes currently backing this beneficiary.
	Votes uint64 `serialize:"true"`

	// The share of emissions captured at the last settlement, in basis
	// points of the frozen tally.
	Weight uint64 `serialize:"true"`

	// Last period this beneficiary was settled for.
	LastUpdate int64 `serialize:"true"`
}
