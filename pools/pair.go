// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"bytes"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// MinimumLiquidity is permanently minted to the burner account when a pair
// is bootstrapped, so that the share price of a near-empty pool cannot be
// manipulated.
const MinimumLiquidity = 1000

// Pair is an automated-market-maker pool over two mints. The reserves live
// in token accounts owned by the derived pair authority; the pool share
// supply lives on [PairMint]. The struct itself never changes after
// creation.
type Pair struct {
	MintA  ledger.Address `serialize:"true"`
	MintB  ledger.Address `serialize:"true"`
	Stable bool           `serialize:"true"`

	PairMint  ledger.Address `serialize:"true"`
	Authority ledger.Address `serialize:"true"`

	AccountA ledger.Address `serialize:"true"`
	AccountB ledger.Address `serialize:"true"`
	FeesA    ledger.Address `serialize:"true"`
	FeesB    ledger.Address `serialize:"true"`
	Burner   ledger.Address `serialize:"true"`
}

// SortMints returns the two mints in canonical order. A pair exists once
// per unordered mint pair, so every derivation uses the sorted order.
func SortMints(a ledger.Address, b ledger.Address) (ledger.Address, ledger.Address) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

// PairID is the storage key of the pair over [mintA] and [mintB],
// independent of argument order.
func PairID(mintA ledger.Address, mintB ledger.Address) ids.ID {
	a, b := SortMints(mintA, mintB)
	buf := make([]byte, 0, 4+2*len(a))
	buf = append(buf, []byte("pair")...)
	buf = append(buf, a[:]...)
	buf = append(buf, b[:]...)
	return hashing.ComputeHash256Array(buf)
}

func newPair(mintA ledger.Address, mintB ledger.Address, stable bool) *Pair {
	a, b := SortMints(mintA, mintB)
	return &Pair{
		MintA:     a,
		MintB:     b,
		Stable:    stable,
		PairMint:  ledger.DeriveAuthority([]byte("mint"), a[:], b[:]),
		Authority: ledger.DeriveAuthority([]byte("authority"), a[:], b[:]),
		AccountA:  ledger.DeriveAuthority([]byte("account_a"), a[:], b[:]),
		AccountB:  ledger.DeriveAuthority([]byte("account_b"), a[:], b[:]),
		FeesA:     ledger.DeriveAuthority([]byte("fees_a"), a[:], b[:]),
		FeesB:     ledger.DeriveAuthority([]byte("fees_b"), a[:], b[:]),
		Burner:    ledger.DeriveAuthority([]byte("burner"), a[:], b[:]),
	}
}
