// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"math/big"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// secondsPerWeek converts a lock period into the whole weeks the time
// multiplier applies to.
const secondsPerWeek = 604800

var (
	lockerAccountSeed = []byte("locker_account")
	receiptSeed       = []byte("receipt")
)

// Locker escrows native tokens in exchange for votes. The vote amount is
// fixed at creation for the whole life of the locker; redemption is only
// possible once UnlockTimestamp has passed, by whoever holds the receipt.
type Locker struct {
	ID ids.ID `serialize:"true"`

	// The zero-decimal mint whose single token is the redemption receipt.
	Receipt ledger.Address `serialize:"true"`

	// The escrow account holding the locked principal.
	Account ledger.Address `serialize:"true"`

	// The beneficiary this locker currently votes for. ShortEmpty while no
	// vote is active.
	Beneficiary ledger.Address `serialize:"true"`

	// The amount of tokens locked.
	Amount uint64 `serialize:"true"`

	// Votes granted by this locker.
	Votes uint64 `serialize:"true"`

	CreationTimestamp int64 `serialize:"true"`
	UnlockTimestamp   int64 `serialize:"true"`
}

// LockerAccountAddress derives the escrow account for locker [id].
func LockerAccountAddress(id ids.ID) ledger.Address {
	return ledger.DeriveAuthority(lockerAccountSeed, id[:])
}

// ReceiptAddress derives the receipt mint for locker [id].
func ReceiptAddress(id ids.ID) ledger.Address {
	return ledger.DeriveAuthority(receiptSeed, id[:])
}

// lockerVotes computes the votes granted for locking [amount] over [period]
// seconds:
//
//	votes = amount * period * timeMultiplier / 604800 / 10000
//
// Intermediates are kept wide; the divisions truncate in the same order as
// the reference arithmetic.
func lockerVotes(amount uint64, period uint64, timeMultiplier uint64) uint64 {
	n := new(big.Int).SetUint64(amount)
	n.Mul(n, new(big.Int).SetUint64(period))
	n.Mul(n, new(big.Int).SetUint64(timeMultiplier))
	n.Div(n, big.NewInt(secondsPerWeek))
	n.Div(n, big.NewInt(10000))
	return n.Uint64()
}
