// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import "errors"

var (
	ErrInsufficientAmount          = errors.New("insufficient amount")
	ErrInsufficientLiquidity       = errors.New("insufficient liquidity")
	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrInsufficientInput           = errors.New("insufficient input")
	ErrInsufficientOutput          = errors.New("insufficient output")
	ErrInvariantK                  = errors.New("violated invariant K")
	ErrPairExists                  = errors.New("pair already exists")
)
