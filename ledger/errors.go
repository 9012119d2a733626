// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient token balance")
	ErrWrongAuthority    = errors.New("authority does not control this account or mint")
	ErrWrongMint         = errors.New("token account is bound to a different mint")
	ErrMintExists        = errors.New("mint already exists")
	ErrAccountExists     = errors.New("token account already exists")
	ErrSupplyOverflow    = errors.New("token supply overflow")
)
