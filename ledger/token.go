// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	mintPrefix    = []byte("mint")
	accountPrefix = []byte("account")

	_ TokenState = &tokenState{}
)

// Mint is a fungible token class. Supply only changes through MintTo and
// Burn, both gated on [Authority].
type Mint struct {
	Authority Address `serialize:"true"`
	Supply    uint64  `serialize:"true"`
	Decimals  uint8   `serialize:"true"`
}

// TokenAccount holds a balance of a single mint on behalf of [Owner].
type TokenAccount struct {
	Mint    Address `serialize:"true"`
	Owner   Address `serialize:"true"`
	Balance uint64  `serialize:"true"`
}

// TokenState is the fungible-token capability the engines consume. Every
// mutation is atomic with respect to the enclosing instruction: the backing
// database is a versiondb and nothing is durable until the instruction
// commits.
type TokenState interface {
	GetMint(addr Address) (*Mint, error)
	PutMint(addr Address, mint *Mint) error
	CreateMint(addr Address, authority Address, decimals uint8) (*Mint, error)

	GetAccount(addr Address) (*TokenAccount, error)
	PutAccount(addr Address, account *TokenAccount) error
	CreateAccount(addr Address, mint Address, owner Address) (*TokenAccount, error)
	// EnsureAccount creates the account if it does not exist yet. It fails
	// with ErrWrongMint if an account exists under [addr] for another mint.
	EnsureAccount(addr Address, mint Address, owner Address) (*TokenAccount, error)

	// Balance is 0 for accounts that do not exist.
	Balance(addr Address) (uint64, error)

	Transfer(from Address, to Address, authority Address, amount uint64) error
	MintTo(mint Address, to Address, authority Address, amount uint64) error
	Burn(mint Address, from Address, authority Address, amount uint64) error
}

type tokenState struct {
	mintDB    database.Database
	accountDB database.Database
}

func NewTokenState(db database.Database) TokenState {
	return &tokenState{
		mintDB:    prefixdb.New(mintPrefix, db),
		accountDB: prefixdb.New(accountPrefix, db),
	}
}

func (s *tokenState) GetMint(addr Address) (*Mint, error) {
	bytes, err := s.mintDB.Get(addr[:])
	if err != nil {
		return nil, err
	}
	mint := Mint{}
	if _, err := Codec.Unmarshal(bytes, &mint); err != nil {
		return nil, err
	}
	return &mint, nil
}

func (s *tokenState) PutMint(addr Address, mint *Mint) error {
	bytes, err := Codec.Marshal(CodecVersion, mint)
	if err != nil {
		return err
	}
	return s.mintDB.Put(addr[:], bytes)
}

func (s *tokenState) CreateMint(addr Address, authority Address, decimals uint8) (*Mint, error) {
	has, err := s.mintDB.Has(addr[:])
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrMintExists
	}
	mint := &Mint{Authority: authority, Decimals: decimals}
	return mint, s.PutMint(addr, mint)
}

func (s *tokenState) GetAccount(addr Address) (*TokenAccount, error) {
	bytes, err := s.accountDB.Get(addr[:])
	if err != nil {
		return nil, err
	}
	account := TokenAccount{}
	if _, err := Codec.Unmarshal(bytes, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *tokenState) PutAccount(addr Address, account *TokenAccount) error {
	bytes, err := Codec.Marshal(CodecVersion, account)
	if err != nil {
		return err
	}
	return s.accountDB.Put(addr[:], bytes)
}

func (s *tokenState) CreateAccount(addr Address, mint Address, owner Address) (*TokenAccount, error) {
	has, err := s.accountDB.Has(addr[:])
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrAccountExists
	}
	account := &TokenAccount{Mint: mint, Owner: owner}
	return account, s.PutAccount(addr, account)
}

func (s *tokenState) EnsureAccount(addr Address, mint Address, owner Address) (*TokenAccount, error) {
	account, err := s.GetAccount(addr)
	if err == database.ErrNotFound {
		return s.CreateAccount(addr, mint, owner)
	}
	if err != nil {
		return nil, err
	}
	if account.Mint != mint {
		return nil, ErrWrongMint
	}
	return account, nil
}

func (s *tokenState) Balance(addr Address) (uint64, error) {
	account, err := s.GetAccount(addr)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *tokenState) Transfer(from Address, to Address, authority Address, amount uint64) error {
	src, err := s.GetAccount(from)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return ErrWrongAuthority
	}
	dst, err := s.GetAccount(to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return ErrWrongMint
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}
	src.Balance -= amount
	newBalance, err := safemath.Add64(dst.Balance, amount)
	if err != nil {
		return ErrSupplyOverflow
	}
	dst.Balance = newBalance
	if err := s.PutAccount(from, src); err != nil {
		return err
	}
	return s.PutAccount(to, dst)
}

func (s *tokenState) MintTo(mint Address, to Address, authority Address, amount uint64) error {
	m, err := s.GetMint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return ErrWrongAuthority
	}
	dst, err := s.GetAccount(to)
	if err != nil {
		return err
	}
	if dst.Mint != mint {
		return ErrWrongMint
	}
	newSupply, err := safemath.Add64(m.Supply, amount)
	if err != nil {
		return ErrSupplyOverflow
	}
	newBalance, err := safemath.Add64(dst.Balance, amount)
	if err != nil {
		return ErrSupplyOverflow
	}
	m.Supply = newSupply
	dst.Balance = newBalance
	if err := s.PutMint(mint, m); err != nil {
		return err
	}
	return s.PutAccount(to, dst)
}

func (s *tokenState) Burn(mint Address, from Address, authority Address, amount uint64) error {
	m, err := s.GetMint(mint)
	if err != nil {
		return err
	}
	src, err := s.GetAccount(from)
	if err != nil {
		return err
	}
	if src.Mint != mint {
		return ErrWrongMint
	}
	if src.Owner != authority {
		return ErrWrongAuthority
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}
	src.Balance -= amount
	m.Supply -= amount
	if err := s.PutMint(mint, m); err != nil {
		return err
	}
	return s.PutAccount(from, src)
}
