// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package pools

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	require := require.New(t)

	require.EqualValues(2000, quote(1000, 500, 1000))
	require.EqualValues(500, quote(1000, 1000, 500))

	// Large reserves must not wrap in the intermediate product.
	require.EqualValues(1<<62, quote(1<<62, 1<<63, 1<<63))
}

func TestSqrt(t *testing.T) {
	require := require.New(t)

	require.EqualValues(1000, sqrt(1000, 1000))
	require.EqualValues(999, sqrt(999, 1000))
	require.EqualValues(0, sqrt(0, 1000))
	require.EqualValues(3_162_277, sqrt(10_000_000, 1_000_000))
}

func TestGetAmountOut(t *testing.T) {
	require := require.New(t)

	// out = in*999/1000 * rOut / (rIn*1000 + in*999/1000)
	// in=1000, reserves 1_000_000 each: 999 * 1_000_000 / 1_000_000_999
	require.EqualValues(998, getAmountOut(1000, 1_000_000, 1_000_000))

	// Zero input prices to zero output.
	require.EqualValues(0, getAmountOut(0, 1_000_000, 1_000_000))

	// Output is always strictly below the output reserve.
	out := getAmountOut(1<<50, 1000, 1000)
	require.Less(out, uint64(1000))
}

func TestKVolatile(t *testing.T) {
	require := require.New(t)

	product := k(1_000_000, 9, 1_000_000, 9, false)
	require.Zero(product.Cmp(new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1_000_000))))

	// A balanced trade with fees grows the product.
	before := k(1_000_000, 9, 1_000_000, 9, false)
	after := k(1_000_999, 9, 999_002, 9, false)
	require.True(after.Cmp(before) >= 0)
}

func TestKStable(t *testing.T) {
	require := require.New(t)

	// The stable curve is symmetric in its arguments.
	a := k(2_000_000_000, 9, 1_000_000_000, 9, true)
	b := k(1_000_000_000, 9, 2_000_000_000, 9, true)
	require.Zero(a.Cmp(b))

	// Moving reserves toward balance at constant sum does not shrink k.
	unbalanced := k(3_000_000_000, 9, 1_000_000_000, 9, true)
	balanced := k(2_000_000_000, 9, 2_000_000_000, 9, true)
	require.True(balanced.Cmp(unbalanced) > 0)
}
