// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

const (
	testID     = uint64(1)
	testSupply = uint64(1_000_000_000)
	testPeriod = uint64(100)

	// 1% expansion per period, neutral time multiplier.
	testExpansionFactor = uint64(100)
	testTimeMultiplier  = uint64(10000)
)

type testEnv struct {
	engine *Engine
	state  State
	tokens ledger.TokenState

	creator ledger.Address
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)

	db := memdb.New()
	env := &testEnv{
		tokens:  ledger.NewTokenState(prefixdb.New([]byte("token"), db)),
		state:   NewState(prefixdb.New([]byte("escrow"), db)),
		creator: ids.GenerateTestShortID(),
	}
	env.engine = NewEngine(env.state, env.tokens)

	_, err := env.engine.InitializeOuroboros(
		env.creator,
		testID,
		testSupply,
		testPeriod,
		0,
		testExpansionFactor,
		testTimeMultiplier,
	)
	require.NoError(err)
	return env
}

func (env *testEnv) balance(t *testing.T, owner ledger.Address, mint ledger.Address) uint64 {
	balance, err := env.tokens.Balance(ledger.AssociatedAccount(owner, mint))
	require.NoError(t, err)
	return balance
}

func (env *testEnv) newBeneficiary(t *testing.T) *Beneficiary {
	beneficiary, err := env.engine.CreateBeneficiary(testID, ids.GenerateTestShortID())
	require.NoError(t, err)
	return beneficiary
}

func (env *testEnv) newLocker(t *testing.T, amount uint64, period uint64, now int64) *Locker {
	locker, err := env.engine.CreateLocker(env.creator, testID, ids.GenerateTestID(), amount, period, now)
	require.NoError(t, err)
	return locker
}

func TestInitializeOuroboros(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	o, err := env.state.GetOuroboros(testID)
	require.NoError(err)
	require.Equal(AuthorityAddress(testID), o.Authority)
	require.Equal(MintAddress(testID), o.Mint)
	require.EqualValues(testSupply, env.balance(t, env.creator, o.Mint))

	_, err = env.engine.InitializeOuroboros(env.creator, testID, testSupply, testPeriod, 0, 1, 1)
	require.Equal(ErrOuroborosExists, err)

	_, err = env.engine.CreateBeneficiary(testID, ids.GenerateTestShortID())
	require.NoError(err)
}

func TestCreateLocker(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	locker := env.newLocker(t, 1000, secondsPerWeek, 10)
	require.EqualValues(1000, locker.Votes)
	require.EqualValues(10, locker.CreationTimestamp)
	require.EqualValues(10+secondsPerWeek, locker.UnlockTimestamp)

	// Principal escrowed, receipt in hand.
	escrowed, err := env.tokens.Balance(locker.Account)
	require.NoError(err)
	require.EqualValues(1000, escrowed)
	require.EqualValues(1, env.balance(t, env.creator, locker.Receipt))
	require.EqualValues(testSupply-1000, env.balance(t, env.creator, MintAddress(testID)))

	_, err = env.engine.CreateLocker(env.creator, testID, locker.ID, 1000, secondsPerWeek, 10)
	require.Equal(ErrLockerExists, err)
}

func TestVoteLifecycle(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	ben1 := env.newBeneficiary(t)
	ben2 := env.newBeneficiary(t)
	locker := env.newLocker(t, 1000, secondsPerWeek, 10)

	// Only the receipt holder can vote.
	stranger := ids.GenerateTestShortID()
	err := env.engine.InitializeVote(stranger, testID, locker.ID, ben1.Account)
	require.Equal(ErrNotReceiptHolder, err)

	err = env.engine.CastVote(env.creator, testID, locker.ID, ben1.Account)
	require.Equal(ErrVoteMissing, err)

	require.NoError(env.engine.InitializeVote(env.creator, testID, locker.ID, ben1.Account))
	err = env.engine.InitializeVote(env.creator, testID, locker.ID, ben2.Account)
	require.Equal(ErrVoteExists, err)

	o, err := env.state.GetOuroboros(testID)
	require.NoError(err)
	require.EqualValues(1000, o.TotalVotes)

	// Moving the vote keeps the tally and conserves the total backing.
	require.NoError(env.engine.CastVote(env.creator, testID, locker.ID, ben2.Account))
	ben1, err = env.state.GetBeneficiary(ben1.Account)
	require.NoError(err)
	ben2, err = env.state.GetBeneficiary(ben2.Account)
	require.NoError(err)
	o, err = env.state.GetOuroboros(testID)
	require.NoError(err)
	require.Zero(ben1.Votes)
	require.EqualValues(1000, ben2.Votes)
	require.Equal(o.TotalVotes, ben1.Votes+ben2.Votes)

	// Resetting releases the votes from the live tally entirely.
	require.NoError(env.engine.ResetVote(env.creator, testID, locker.ID))
	ben2, err = env.state.GetBeneficiary(ben2.Account)
	require.NoError(err)
	o, err = env.state.GetOuroboros(testID)
	require.NoError(err)
	require.Zero(ben2.Votes)
	require.Zero(o.TotalVotes)

	// And the locker is free to vote again.
	require.NoError(env.engine.InitializeVote(env.creator, testID, locker.ID, ben1.Account))
}

func TestEmissionSettlement(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	ben1 := env.newBeneficiary(t)
	ben2 := env.newBeneficiary(t)
	locker := env.newLocker(t, 1000, secondsPerWeek, 10)
	require.NoError(env.engine.InitializeVote(env.creator, testID, locker.ID, ben1.Account))

	// First claim after the period closes rolls the epoch and settles:
	// weight 10000 BP, emissions 1% of the unlocked supply.
	amount, err := env.engine.ClaimIncentives(testID, ben1.Account, 120)
	require.NoError(err)
	require.EqualValues(9_999_990, amount)
	require.EqualValues(9_999_990, env.balance(t, ben1.Account, MintAddress(testID)))

	o, err := env.state.GetOuroboros(testID)
	require.NoError(err)
	require.EqualValues(100, o.LastPeriod)
	require.EqualValues(1000, o.LastPeriodVotes)

	ben1, err = env.state.GetBeneficiary(ben1.Account)
	require.NoError(err)
	require.EqualValues(10000, ben1.Weight)
	require.EqualValues(100, ben1.LastUpdate)

	// Settling is idempotent within the period.
	amount, err = env.engine.ClaimIncentives(testID, ben1.Account, 130)
	require.NoError(err)
	require.Zero(amount)
	require.EqualValues(9_999_990, env.balance(t, ben1.Account, MintAddress(testID)))

	// ben2 missed the settlement: vote moves toward it are rejected until
	// it is settled too.
	err = env.engine.CastVote(env.creator, testID, locker.ID, ben2.Account)
	require.Equal(ErrUnclaimedIncentives, err)

	amount, err = env.engine.ClaimIncentives(testID, ben2.Account, 130)
	require.NoError(err)
	require.Zero(amount)

	require.NoError(env.engine.CastVote(env.creator, testID, locker.ID, ben2.Account))
}

func TestRedeemLocker(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	ben := env.newBeneficiary(t)
	locker := env.newLocker(t, 5000, 200, 10)
	require.EqualValues(1, locker.Votes)
	require.NoError(env.engine.InitializeVote(env.creator, testID, locker.ID, ben.Account))

	_, err := env.engine.RedeemLocker(env.creator, testID, locker.ID, 100)
	require.Equal(ErrLockerLocked, err)

	stranger := ids.GenerateTestShortID()
	_, err = env.engine.RedeemLocker(stranger, testID, locker.ID, 300)
	require.Equal(ErrNotReceiptHolder, err)

	amount, err := env.engine.RedeemLocker(env.creator, testID, locker.ID, 300)
	require.NoError(err)
	require.EqualValues(5000, amount)

	// Principal back, receipt burned, votes released, locker destroyed.
	require.EqualValues(testSupply, env.balance(t, env.creator, MintAddress(testID)))
	require.Zero(env.balance(t, env.creator, locker.Receipt))
	o, err := env.state.GetOuroboros(testID)
	require.NoError(err)
	require.Zero(o.TotalVotes)
	_, err = env.state.GetLocker(locker.ID)
	require.Equal(database.ErrNotFound, err)
}

func TestSnapshotLedger(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	// An external reward asset, deposited by the creator.
	assetAuthority := ids.GenerateTestShortID()
	assetMint := ids.GenerateTestShortID()
	_, err := env.tokens.CreateMint(assetMint, assetAuthority, 9)
	require.NoError(err)
	senderAccount := ledger.AssociatedAccount(env.creator, assetMint)
	_, err = env.tokens.EnsureAccount(senderAccount, assetMint, env.creator)
	require.NoError(err)
	require.NoError(env.tokens.MintTo(assetMint, senderAccount, assetAuthority, 10_000_000_000))

	// First contact well past the schedule: the epoch rolls one step, the
	// asset initializes against it, and the cursor advances past bucket 0.
	require.NoError(env.engine.ReceiveAsset(env.creator, testID, assetMint, 0, 2_000_000_000, 450))

	asset, err := env.state.GetAsset(testID, assetMint)
	require.NoError(err)
	require.EqualValues(1, asset.LastSnapshotIndex)
	snap0, err := env.state.GetSnapshot(testID, assetMint, 0)
	require.NoError(err)
	require.EqualValues(200, snap0.Timestamp)
	require.EqualValues(2_000_000_000, snap0.Rewards)

	// Depositing into an already-closed bucket is rejected.
	err = env.engine.ReceiveAsset(env.creator, testID, assetMint, 0, 1, 455)
	require.Equal(ErrInvalidSnapshot, err)

	require.NoError(env.engine.ReceiveAsset(env.creator, testID, assetMint, 1, 2_000_000_000, 460))
	require.NoError(env.engine.ReceiveAsset(env.creator, testID, assetMint, 2, 2_000_000_000, 470))

	// A settled beneficiary and a locker young enough to claim bucket 2.
	beneficiary := env.newBeneficiary(t)
	locker := env.newLocker(t, 1000, secondsPerWeek, 475)
	require.NoError(env.engine.InitializeVote(env.creator, testID, locker.ID, beneficiary.Account))

	// The schedule has caught up; this deposit lands in the open bucket 3
	// and records the live tally.
	require.NoError(env.engine.ReceiveAsset(env.creator, testID, assetMint, 3, 2_000_000_000, 480))
	snap3, err := env.state.GetSnapshot(testID, assetMint, 3)
	require.NoError(err)
	require.EqualValues(500, snap3.Timestamp)
	require.EqualValues(1000, snap3.Votes)

	// Once bucket 3's own period has passed, its timestamp is stale.
	err = env.engine.ReceiveAsset(env.creator, testID, assetMint, 3, 1, 505)
	require.Equal(ErrInvalidSnapshot, err)

	// Collection pays a pure time rate over the window [snap2, snap3]:
	// 1e9 per full period, regardless of the bucket's size.
	stranger := ids.GenerateTestShortID()
	_, err = env.engine.CollectFees(stranger, testID, locker.ID, assetMint, 490)
	require.Equal(ErrNotReceiptHolder, err)

	collected, err := env.engine.CollectFees(env.creator, testID, locker.ID, assetMint, 490)
	require.NoError(err)
	require.EqualValues(1_000_000_000, collected)

	claimant, err := env.state.GetClaimant(testID, assetMint, locker.ID)
	require.NoError(err)
	require.EqualValues(490, claimant.LastClaim)

	// Follow-up collections only cover the time since the last one, and
	// the claim cursor never moves backwards or past the open bucket.
	collected, err = env.engine.CollectFees(env.creator, testID, locker.ID, assetMint, 495)
	require.NoError(err)
	require.EqualValues(100_000_000, collected)

	collected, err = env.engine.CollectFees(env.creator, testID, locker.ID, assetMint, 520)
	require.NoError(err)
	require.EqualValues(50_000_000, collected)
	claimant, err = env.state.GetClaimant(testID, assetMint, locker.ID)
	require.NoError(err)
	require.EqualValues(500, claimant.LastClaim)

	_, err = env.engine.CollectFees(env.creator, testID, locker.ID, assetMint, 530)
	require.Equal(ErrInvalidSnapshot, err)
}
