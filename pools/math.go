// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import "math/big"

// All pricing math keeps intermediates in big.Int: products of two 64-bit
// reserves do not fit in a uint64, and the invariant comparison must not
// wrap.

var (
	bigThousand = big.NewInt(1000)
	big999      = big.NewInt(999)
	bigGwei     = big.NewInt(1_000_000_000)
	bigTwo      = big.NewInt(2)
)

// mulDiv computes a * b / c with a 128-bit intermediate. c must be nonzero.
func mulDiv(a uint64, b uint64, c uint64) uint64 {
	n := new(big.Int).SetUint64(a)
	n.Mul(n, new(big.Int).SetUint64(b))
	n.Div(n, new(big.Int).SetUint64(c))
	return n.Uint64()
}

// quote returns the amount of B that matches [amountA] at the current
// reserve ratio.
func quote(amountA uint64, reserveA uint64, reserveB uint64) uint64 {
	return mulDiv(amountA, reserveB, reserveA)
}

// sqrt is the integer square root of a * b.
func sqrt(a uint64, b uint64) uint64 {
	n := new(big.Int).SetUint64(a)
	n.Mul(n, new(big.Int).SetUint64(b))
	return n.Sqrt(n).Uint64()
}

// getAmountOut prices an exact-input swap on the constant-product curve with
// a 0.1% fee folded into the effective input:
//
//	out = in*999/1000 * reserveOut / (reserveIn*1000 + in*999/1000)
//
// This fee is charged on top of the 0.1% skim the swap handler routes to the
// fee accounts before pricing.
func getAmountOut(amountIn uint64, reserveIn uint64, reserveOut uint64) uint64 {
	amountInWithFees := new(big.Int).SetUint64(amountIn)
	amountInWithFees.Mul(amountInWithFees, big999)
	amountInWithFees.Div(amountInWithFees, bigThousand)

	numerator := new(big.Int).Mul(amountInWithFees, new(big.Int).SetUint64(reserveOut))
	denominator := new(big.Int).SetUint64(reserveIn)
	denominator.Mul(denominator, bigThousand)
	denominator.Add(denominator, amountInWithFees)

	return numerator.Div(numerator, denominator).Uint64()
}

// k is the pool invariant: the plain product x*y for volatile pairs, and
// (xy)(x²+y²)/2 scaled to 9 decimals for correlated-asset pairs. The stable
// branch divides by the numeric decimals value, matching the reference
// arithmetic; both sides of a comparison scale identically.
func k(x uint64, xDecimals uint8, y uint64, yDecimals uint8, stable bool) *big.Int {
	bigX := new(big.Int).SetUint64(x)
	bigY := new(big.Int).SetUint64(y)
	if !stable {
		return bigX.Mul(bigX, bigY) // xy >= k
	}

	bigX.Mul(bigX, bigGwei)
	bigX.Div(bigX, new(big.Int).SetUint64(uint64(xDecimals)))
	bigY.Mul(bigY, bigGwei)
	bigY.Div(bigY, new(big.Int).SetUint64(uint64(yDecimals)))

	a := new(big.Int).Mul(bigX, bigY)
	a.Div(a, bigGwei)

	b := new(big.Int).Mul(bigX, bigX)
	b.Div(b, bigGwei)
	yy := new(big.Int).Mul(bigY, bigY)
	yy.Div(yy, bigGwei)
	b.Add(b, yy)

	a.Mul(a, b)
	a.Div(a, bigGwei)
	return a.Div(a, bigTwo) // x3y+y3x >= k
}
