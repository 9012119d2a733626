// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

// Address identifies an account, a mint, or a derived authority on the
// ledger. Program-owned authorities are plain addresses computed from seeds;
// the host is trusted to only let the owning program sign as them.
type Address = ids.ShortID

// DeriveAuthority deterministically derives an address from seed components.
// Each seed is length-prefixed so that ("ab","c") and ("a","bc") cannot
// collide.
func DeriveAuthority(seeds ...[]byte) Address {
	size := 0
	for _, seed := range seeds {
		size += wrappersIntLen + len(seed)
	}
	buf := make([]byte, 0, size)
	for _, seed := range seeds {
		var lenBytes [wrappersIntLen]byte
		binary.BigEndian.PutUint32(lenBytes[:], uint32(len(seed)))
		buf = append(buf, lenBytes[:]...)
		buf = append(buf, seed...)
	}
	addr, _ := ids.ToShortID(hashing.PubkeyBytesToAddress(buf))
	return addr
}

const wrappersIntLen = 4

// AssociatedAccount is the canonical token account of [owner] for [mint].
// Handlers that auto-create recipient accounts always use this derivation.
func AssociatedAccount(owner Address, mint Address) Address {
	return DeriveAuthority([]byte("associated"), owner[:], mint[:])
}

// Uint64Seed encodes a numeric identifier as a seed component.
func Uint64Seed(n uint64) []byte {
	seed := make([]byte, 8)
	binary.BigEndian.PutUint64(seed, n)
	return seed
}
