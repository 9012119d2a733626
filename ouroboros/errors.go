// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import "errors"

var (
	ErrOuroborosExists   = errors.New("ouroboros already initialized")
	ErrLockerExists      = errors.New("locker already exists")
	ErrBeneficiaryExists = errors.New("beneficiary already exists")

	// ErrNotReceiptHolder rejects locker operations from anyone not holding
	// the locker's receipt token.
	ErrNotReceiptHolder = errors.New("caller does not hold the locker receipt")

	// ErrUnclaimedIncentives gates every vote move on the touched
	// beneficiary being settled for the just-closed epoch.
	ErrUnclaimedIncentives = errors.New("incentives need to be claimed first")

	// ErrInvalidSnapshot rejects reward deposits and collections that
	// reference a snapshot outside the currently open window.
	ErrInvalidSnapshot = errors.New("given snapshot is invalid")

	ErrVoteExists   = errors.New("locker already voted")
	ErrVoteMissing  = errors.New("locker has no active vote")
	ErrLockerLocked = errors.New("locker has not reached its unlock timestamp")
)
