// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"github.com/ava-labs/avalanchego/ids"
	safemath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// Vote moves keep two invariants: outside an in-flight instruction the sum
// of beneficiary votes equals the live tally, and no beneficiary's vote
// backing changes while it still owes a settlement for the closed period.

// InitializeVote allocates the locker's votes to [account]. The locker must
// not have an active vote; the votes enter both the beneficiary's backing
// and the live tally.
func (e *Engine) InitializeVote(
	voter ledger.Address,
	ouroborosID uint64,
	lockerID ids.ID,
	account ledger.Address,
) error {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return err
	}
	locker, err := e.state.GetLocker(lockerID)
	if err != nil {
		return err
	}
	if err := e.checkReceipt(voter, locker); err != nil {
		return err
	}
	if locker.Beneficiary != ids.ShortEmpty {
		return ErrVoteExists
	}

	beneficiary, err := e.state.GetBeneficiary(account)
	if err != nil {
		return err
	}
	if beneficiary.LastUpdate < o.LastPeriod {
		return ErrUnclaimedIncentives
	}

	newVotes, err := safemath.Add64(beneficiary.Votes, locker.Votes)
	if err != nil {
		return err
	}
	newTotal, err := safemath.Add64(o.TotalVotes, locker.Votes)
	if err != nil {
		return err
	}
	beneficiary.Votes = newVotes
	o.TotalVotes = newTotal
	locker.Beneficiary = account

	if err := e.state.PutBeneficiary(beneficiary); err != nil {
		return err
	}
	if err := e.state.PutOuroboros(o); err != nil {
		return err
	}
	return e.state.PutLocker(locker)
}

// CastVote moves the locker's votes from its current beneficiary to
// [account]. Both beneficiaries must be settled; the live tally is
// unchanged.
func (e *Engine) CastVote(
	voter ledger.Address,
	ouroborosID uint64,
	lockerID ids.ID,
	account ledger.Address,
) error {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return err
	}
	locker, err := e.state.GetLocker(lockerID)
	if err != nil {
		return err
	}
	if err := e.checkReceipt(voter, locker); err != nil {
		return err
	}
	if locker.Beneficiary == ids.ShortEmpty {
		return ErrVoteMissing
	}

	old, err := e.state.GetBeneficiary(locker.Beneficiary)
	if err != nil {
		return err
	}
	if old.LastUpdate < o.LastPeriod {
		return ErrUnclaimedIncentives
	}
	if account == locker.Beneficiary {
		return nil
	}

	beneficiary, err := e.state.GetBeneficiary(account)
	if err != nil {
		return err
	}
	if beneficiary.LastUpdate < o.LastPeriod {
		return ErrUnclaimedIncentives
	}

	old.Votes -= locker.Votes
	newVotes, err := safemath.Add64(beneficiary.Votes, locker.Votes)
	if err != nil {
		return err
	}
	beneficiary.Votes = newVotes
	locker.Beneficiary = account

	if err := e.state.PutBeneficiary(old); err != nil {
		return err
	}
	if err := e.state.PutBeneficiary(beneficiary); err != nil {
		return err
	}
	return e.state.PutLocker(locker)
}

// ResetVote releases the locker's votes entirely: they leave both the voted
// beneficiary's backing and the live tally, and the locker may vote again
// later.
func (e *Engine) ResetVote(
	voter ledger.Address,
	ouroborosID uint64,
	lockerID ids.ID,
) error {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return err
	}
	locker, err := e.state.GetLocker(lockerID)
	if err != nil {
		return err
	}
	if err := e.checkReceipt(voter, locker); err != nil {
		return err
	}
	if locker.Beneficiary == ids.ShortEmpty {
		return ErrVoteMissing
	}

	beneficiary, err := e.state.GetBeneficiary(locker.Beneficiary)
	if err != nil {
		return err
	}
	if beneficiary.LastUpdate < o.LastPeriod {
		return ErrUnclaimedIncentives
	}

	beneficiary.Votes -= locker.Votes
	o.TotalVotes -= locker.Votes
	locker.Beneficiary = ids.ShortEmpty

	if err := e.state.PutBeneficiary(beneficiary); err != nil {
		return err
	}
	if err := e.state.PutOuroboros(o); err != nil {
		return err
	}
	return e.state.PutLocker(locker)
}
