// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"math/big"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

var bigGwei = big.NewInt(1_000_000_000)

// ReceiveAsset deposits [amount] of an external asset into the snapshot
// currently open for deposits. The epoch is rolled first; the asset record
// and the snapshot are created lazily on first contact. [snapshotIndex] must
// name the open snapshot or the deposit fails with ErrInvalidSnapshot.
//
// The snapshot cursor only advances when a full period has passed since the
// asset's last advance, so quiet assets accumulate several periods into one
// bucket.
func (e *Engine) ReceiveAsset(
	sender ledger.Address,
	ouroborosID uint64,
	mint ledger.Address,
	snapshotIndex uint64,
	amount uint64,
	now int64,
) error {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return err
	}
	o.AdvanceEpoch(now)

	asset, err := e.state.GetAsset(ouroborosID, mint)
	switch {
	case err == database.ErrNotFound:
		if snapshotIndex != 0 {
			return ErrInvalidSnapshot
		}
		asset = &Asset{
			Mint:         mint,
			Account:      AssetAccountAddress(ouroborosID, mint),
			RewardHeight: amount,
			LastUpdate:   o.LastPeriod,
		}
		if _, err := e.tokens.CreateAccount(asset.Account, mint, o.Authority); err != nil {
			return err
		}
	case err != nil:
		return err
	case asset.LastSnapshotIndex != snapshotIndex:
		return ErrInvalidSnapshot
	}

	periodEnd := o.LastPeriod + int64(o.Period)
	snapshot, err := e.state.GetSnapshot(ouroborosID, mint, snapshotIndex)
	switch {
	case err == database.ErrNotFound:
		snapshot = &Snapshot{
			Mint:      mint,
			Timestamp: periodEnd,
			Index:     asset.LastSnapshotIndex,
		}
	case err != nil:
		return err
	case snapshot.Timestamp != periodEnd || snapshot.Index != snapshotIndex:
		return ErrInvalidSnapshot
	}

	// Snapshot validation precedes the cursor advance: a deposit that both
	// closes a bucket and opens the next one still lands in the bucket it
	// named.
	if asset.LastUpdate+int64(o.Period) < now {
		asset.LastUpdate += int64(o.Period)
		asset.LastSnapshotIndex++
	}

	newRewards, err := safemath.Add64(snapshot.Rewards, amount)
	if err != nil {
		return err
	}
	snapshot.Rewards = newRewards
	snapshot.Votes = o.TotalVotes

	if err := e.tokens.Transfer(ledger.AssociatedAccount(sender, mint), asset.Account, sender, amount); err != nil {
		return err
	}

	if err := e.state.PutAsset(ouroborosID, asset); err != nil {
		return err
	}
	if err := e.state.PutSnapshot(ouroborosID, snapshot); err != nil {
		return err
	}
	return e.state.PutOuroboros(o)
}

// CollectFees pays the receipt holder of [lockerID] its share of the asset
// rewards for the window between the previous snapshot and the open one.
//
// The payout follows the reference arithmetic literally:
//
//	collectible = rewards * 1e9 * (current.timestamp - lastClaim) / period / rewards
//
// The rewards terms cancel, so the payout is a pure time rate independent of
// the bucket's size. An empty bucket pays zero instead of dividing by zero.
func (e *Engine) CollectFees(
	holder ledger.Address,
	ouroborosID uint64,
	lockerID ids.ID,
	mint ledger.Address,
	now int64,
) (uint64, error) {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return 0, err
	}
	locker, err := e.state.GetLocker(lockerID)
	if err != nil {
		return 0, err
	}
	if err := e.checkReceipt(holder, locker); err != nil {
		return 0, err
	}
	asset, err := e.state.GetAsset(ouroborosID, mint)
	if err != nil {
		return 0, err
	}

	current, err := e.state.GetSnapshot(ouroborosID, mint, asset.LastSnapshotIndex)
	if err != nil {
		return 0, err
	}
	if current.Index == 0 {
		// No closed window exists yet.
		return 0, ErrInvalidSnapshot
	}
	previous, err := e.state.GetSnapshot(ouroborosID, mint, current.Index-1)
	if err == database.ErrNotFound {
		return 0, ErrInvalidSnapshot
	}
	if err != nil {
		return 0, err
	}

	claimant, err := e.state.GetClaimant(ouroborosID, mint, lockerID)
	fresh := err == database.ErrNotFound
	if fresh {
		claimant = &Claimant{Locker: lockerID, Mint: mint}
	} else if err != nil {
		return 0, err
	}

	// The window must still be claimable: the open snapshot ahead of the
	// claim cursor, and the closed one inside the locker's lifetime or not
	// yet fully claimed.
	if current.Timestamp <= claimant.LastClaim {
		return 0, ErrInvalidSnapshot
	}
	if previous.Timestamp >= locker.CreationTimestamp && previous.Timestamp >= claimant.LastClaim {
		return 0, ErrInvalidSnapshot
	}
	if fresh {
		claimant.LastClaim = previous.Timestamp
	}

	var collectible uint64
	if previous.Rewards > 0 {
		elapsed := current.Timestamp - claimant.LastClaim
		n := new(big.Int).SetUint64(previous.Rewards)
		n.Mul(n, bigGwei)
		n.Mul(n, big.NewInt(elapsed))
		n.Div(n, new(big.Int).SetUint64(o.Period))
		n.Div(n, new(big.Int).SetUint64(previous.Rewards))
		collectible = n.Uint64()
	}

	// The claim cursor never moves past the open snapshot, nor backwards.
	if now < current.Timestamp {
		claimant.LastClaim = now
	} else {
		claimant.LastClaim = current.Timestamp
	}

	holderAccount := ledger.AssociatedAccount(holder, mint)
	if _, err := e.tokens.EnsureAccount(holderAccount, mint, holder); err != nil {
		return 0, err
	}
	if err := e.tokens.Transfer(asset.Account, holderAccount, o.Authority, collectible); err != nil {
		return 0, err
	}

	return collectible, e.state.PutClaimant(ouroborosID, claimant)
}
