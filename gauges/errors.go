// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package gauges

import "errors"

var (
	ErrGaugeExists       = errors.New("gauge already exists")
	ErrInsufficientStake = errors.New("deposit amount is zero")
)
