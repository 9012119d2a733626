// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// nativeDecimals is the precision of every ouroboros native mint.
const nativeDecimals = 9

// Engine executes escrow instructions against the ledger. Handlers receive
// the instruction timestamp explicitly; the enclosing instruction reads the
// clock once and commits or aborts all writes together.
type Engine struct {
	state  State
	tokens ledger.TokenState
}

func NewEngine(state State, tokens ledger.TokenState) *Engine {
	return &Engine{
		state:  state,
		tokens: tokens,
	}
}

// InitializeOuroboros creates the emission schedule [id], its native mint,
// and mints the initial supply to the creator. The first period opens at
// [startDate].
func (e *Engine) InitializeOuroboros(
	creator ledger.Address,
	id uint64,
	initialSupply uint64,
	period uint64,
	startDate int64,
	expansionFactor uint64,
	timeMultiplier uint64,
) (*Ouroboros, error) {
	has, err := e.state.HasOuroboros(id)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrOuroborosExists
	}

	o := &Ouroboros{
		ID:              id,
		Authority:       AuthorityAddress(id),
		Mint:            MintAddress(id),
		Period:          period,
		LastPeriod:      startDate,
		ExpansionFactor: expansionFactor,
		TimeMultiplier:  timeMultiplier,
	}
	if _, err := e.tokens.CreateMint(o.Mint, o.Authority, nativeDecimals); err != nil {
		return nil, err
	}

	creatorAccount := ledger.AssociatedAccount(creator, o.Mint)
	if _, err := e.tokens.EnsureAccount(creatorAccount, o.Mint, creator); err != nil {
		return nil, err
	}
	if err := e.tokens.MintTo(o.Mint, creatorAccount, o.Authority, initialSupply); err != nil {
		return nil, err
	}

	return o, e.state.PutOuroboros(o)
}

// CreateBeneficiary registers [account] as an emission destination. A new
// beneficiary is born settled for the current period so it can receive votes
// immediately.
func (e *Engine) CreateBeneficiary(ouroborosID uint64, account ledger.Address) (*Beneficiary, error) {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return nil, err
	}
	has, err := e.state.HasBeneficiary(account)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrBeneficiaryExists
	}

	beneficiary := &Beneficiary{
		Account:    account,
		LastUpdate: o.LastPeriod,
	}
	return beneficiary, e.state.PutBeneficiary(beneficiary)
}

// CreateLocker escrows [amount] native tokens for [period] seconds. The
// votes granted are fixed for the life of the locker and the single receipt
// token minted to the creator is the only redemption credential.
func (e *Engine) CreateLocker(
	creator ledger.Address,
	ouroborosID uint64,
	lockerID ids.ID,
	amount uint64,
	period uint64,
	now int64,
) (*Locker, error) {
	o, err := e.state.GetOuroboros(ouroborosID)
	if err != nil {
		return nil, err
	}
	has, err := e.state.HasLocker(lockerID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrLockerExists
	}

	locker := &Locker{
		ID:                lockerID,
		Receipt:           ReceiptAddress(lockerID),
		Account:           LockerAccountAddress(lockerID),
		Amount:            amount,
		Votes:             lockerVotes(amount, period, o.TimeMultiplier),
		CreationTimestamp: now,
		UnlockTimestamp:   now + int64(period),
	}

	if _, err := e.tokens.CreateAccount(locker.Account, o.Mint, o.Authority); err != nil {
		return nil, err
	}
	if _, err := e.tokens.CreateMint(locker.Receipt, o.Authority, 0); err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(ledger.AssociatedAccount(creator, o.Mint), locker.Account, creator, amount); err != nil {
		return nil, err
	}

	receiptAccount := ledger.AssociatedAccount(creator, locker.Receipt)
	if _, err := e.tokens.EnsureAccount(receiptAccount, locker.Receipt, creator); err != nil {
		return nil, err
	}
	if err := e.tokens.MintTo(locker.Receipt, receiptAccount, o.Authority, 1); err != nil {
		return nil, err
	}

	return locker, e.state.PutLocker(locker)
}

// RedeemLocker returns the escrowed principal to the receipt holder once the
// unlock timestamp has passed. An active vote is released first, which
// requires the voted beneficiary to be settled; the receipt is burned and
// the locker destroyed.
func (e *Engine) RedeemLocker(
	holder ledger.Address,
	ouroborosID uint64,
	lockerID ids.ID,
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
	if now < locker.UnlockTimestamp {
		return 0, ErrLockerLocked
	}

	if locker.Beneficiary != ids.ShortEmpty {
		beneficiary, err := e.state.GetBeneficiary(locker.Beneficiary)
		if err != nil {
			return 0, err
		}
		if beneficiary.LastUpdate < o.LastPeriod {
			return 0, ErrUnclaimedIncentives
		}
		beneficiary.Votes -= locker.Votes
		o.TotalVotes -= locker.Votes
		if err := e.state.PutBeneficiary(beneficiary); err != nil {
			return 0, err
		}
		if err := e.state.PutOuroboros(o); err != nil {
			return 0, err
		}
	}

	if err := e.tokens.Burn(locker.Receipt, ledger.AssociatedAccount(holder, locker.Receipt), holder, 1); err != nil {
		return 0, err
	}

	holderAccount := ledger.AssociatedAccount(holder, o.Mint)
	if _, err := e.tokens.EnsureAccount(holderAccount, o.Mint, holder); err != nil {
		return 0, err
	}
	if err := e.tokens.Transfer(locker.Account, holderAccount, o.Authority, locker.Amount); err != nil {
		return 0, err
	}

	return locker.Amount, e.state.DeleteLocker(lockerID)
}

// checkReceipt authorizes a locker operation: the caller must hold the one
// receipt token in their associated account.
func (e *Engine) checkReceipt(holder ledger.Address, locker *Locker) error {
	balance, err := e.tokens.Balance(ledger.AssociatedAccount(holder, locker.Receipt))
	if err != nil {
		return err
	}
	if balance != 1 {
		return ErrNotReceiptHolder
	}
	return nil
}
