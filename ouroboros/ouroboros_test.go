// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroboros

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvanceEpoch(t *testing.T) {
	require := require.New(t)

	o := &Ouroboros{
		Period:     100,
		LastPeriod: 0,
		TotalVotes: 7,
	}

	require.False(o.AdvanceEpoch(99))
	require.EqualValues(0, o.LastPeriod)
	require.Zero(o.LastPeriodVotes)

	require.True(o.AdvanceEpoch(100))
	require.EqualValues(100, o.LastPeriod)
	require.EqualValues(7, o.LastPeriodVotes)

	// Idempotent within the new period.
	require.False(o.AdvanceEpoch(150))
	require.EqualValues(100, o.LastPeriod)

	// A long gap still advances a single step per call.
	require.True(o.AdvanceEpoch(350))
	require.EqualValues(200, o.LastPeriod)
	require.True(o.AdvanceEpoch(350))
	require.EqualValues(300, o.LastPeriod)
}

func TestLockerVotes(t *testing.T) {
	require := require.New(t)

	// A one-week lock at a neutral multiplier grants one vote per token.
	require.EqualValues(1000, lockerVotes(1000, secondsPerWeek, 10000))

	// Double multiplier doubles the votes.
	require.EqualValues(2000, lockerVotes(1000, secondsPerWeek, 20000))

	// Short locks truncate.
	require.EqualValues(1, lockerVotes(5000, 200, 10000))
	require.EqualValues(0, lockerVotes(10, 200, 10000))

	// Wide intermediates: a large amount locked for years must not wrap.
	require.EqualValues(
		uint64(3_000_000_000_000)*104,
		lockerVotes(3_000_000_000_000, 104*secondsPerWeek, 10000),
	)
}

func TestMulDiv(t *testing.T) {
	require := require.New(t)

	require.EqualValues(10000, mulDiv(10000, 1000, 1000))
	// 10000 * votes overflows uint64 arithmetic for large tallies; the
	// wide intermediate must not.
	require.EqualValues(10000, mulDiv(10000, 1<<62, 1<<62))
}
