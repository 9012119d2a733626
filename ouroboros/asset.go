// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

var assetAccountSeed = []byte("asset_account")

// Asset tracks one external token the protocol accumulates as rewards for
// locker holders. Deposits are bucketed into per-period snapshots; the asset
// record carries the cursor of the snapshot currently open for deposits.
type Asset struct {
	// The asset's mint.
	Mint ledger.Address `serialize:"true"`

	// The holding account fees accumulate into.
	Account ledger.Address `serialize:"true"`

	// Amount recorded when the asset was first seen.
	RewardHeight uint64 `serialize:"true"`

	// Last time the snapshot cursor moved.
	LastUpdate int64 `serialize:"true"`

	// Index of the snapshot currently open for deposits.
	LastSnapshotIndex uint64 `serialize:"true"`
}

// Snapshot is the reward bucket of one asset for one period.
type Snapshot struct {
	Mint ledger.Address `serialize:"true"`

	// Start of the period following the one being snapshotted.
	Timestamp int64 `serialize:"true"`

	Index uint64 `serialize:"true"`

	// Rewards deposited into this bucket.
	Rewards uint64 `serialize:"true"`

	// The live vote tally as of the last deposit. Last writer wins.
	Votes uint64 `serialize:"true"`
}

// Claimant records how far one locker has collected against one asset.
type Claimant struct {
	// The locker whose claims are tracked.
	Locker ids.ID `serialize:"true"`

	// The asset being claimed.
	Mint ledger.Address `serialize:"true"`

	// Last time the locker collected. Never moves backwards.
	LastClaim int64 `serialize:"true"`
}

// AssetAccountAddress derives the holding account of [mint] under the
// ouroboros [id].
func AssetAccountAddress(id uint64, mint ledger.Address) ledger.Address {
	return ledger.DeriveAuthority(assetAccountSeed, ledger.Uint64Seed(id), mint[:])
}
