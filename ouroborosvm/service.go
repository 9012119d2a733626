// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/api"
	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

// parseAddress decodes the string form used by every API argument into a
// ledger address.
func parseAddress(addr string) (ledger.Address, error) {
	return ids.ShortFromString(addr)
}

// TokenService exposes the fungible-token ledger.
type TokenService struct {
	vm *VM
}

// CreateMintArgs are the arguments to CreateMint
type CreateMintArgs struct {
	Mint      string `json:"mint"`
	Authority string `json:"authority"`
	Decimals  uint8  `json:"decimals"`
}

// CreateMint registers a new token class under the given authority.
func (s *TokenService) CreateMint(_ *http.Request, args *CreateMintArgs, reply *api.EmptyReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	authority, err := parseAddress(args.Authority)
	if err != nil {
		return err
	}
	return s.vm.run("token.createMint", func() error {
		_, err := s.vm.state.Tokens().CreateMint(mint, authority, args.Decimals)
		return err
	})
}

// MintToArgs are the arguments to MintTo
type MintToArgs struct {
	Mint      string       `json:"mint"`
	Owner     string       `json:"owner"`
	Authority string       `json:"authority"`
	Amount    cjson.Uint64 `json:"amount"`
}

// MintTo mints [args.Amount] units to the owner's associated account,
// creating the account if it does not exist yet.
func (s *TokenService) MintTo(_ *http.Request, args *MintToArgs, reply *api.EmptyReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	owner, err := parseAddress(args.Owner)
	if err != nil {
		return err
	}
	authority, err := parseAddress(args.Authority)
	if err != nil {
		return err
	}
	return s.vm.run("token.mintTo", func() error {
		account := ledger.AssociatedAccount(owner, mint)
		if _, err := s.vm.state.Tokens().EnsureAccount(account, mint, owner); err != nil {
			return err
		}
		return s.vm.state.Tokens().MintTo(mint, account, authority, uint64(args.Amount))
	})
}

// TransferArgs are the arguments to Transfer
type TransferArgs struct {
	Mint   string       `json:"mint"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Amount cjson.Uint64 `json:"amount"`
}

// Transfer moves units between the two owners' associated accounts. The
// sender is the authority over its own account.
func (s *TokenService) Transfer(_ *http.Request, args *TransferArgs, reply *api.EmptyReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	from, err := parseAddress(args.From)
	if err != nil {
		return err
	}
	to, err := parseAddress(args.To)
	if err != nil {
		return err
	}
	return s.vm.run("token.transfer", func() error {
		toAccount := ledger.AssociatedAccount(to, mint)
		if _, err := s.vm.state.Tokens().EnsureAccount(toAccount, mint, to); err != nil {
			return err
		}
		fromAccount := ledger.AssociatedAccount(from, mint)
		return s.vm.state.Tokens().Transfer(fromAccount, toAccount, from, uint64(args.Amount))
	})
}

// BalanceArgs are the arguments to Balance
type BalanceArgs struct {
	Mint  string `json:"mint"`
	Owner string `json:"owner"`
}

// BalanceReply is the reply from Balance
type BalanceReply struct {
	Balance cjson.Uint64 `json:"balance"`
}

// Balance returns the owner's associated-account balance, zero if the
// account was never created.
func (s *TokenService) Balance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	mint, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	owner, err := parseAddress(args.Owner)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		balance, err := s.vm.state.Tokens().Balance(ledger.AssociatedAccount(owner, mint))
		if err != nil {
			return err
		}
		reply.Balance = cjson.Uint64(balance)
		return nil
	})
}

// GetMintArgs are the arguments to GetMint
type GetMintArgs struct {
	Mint string `json:"mint"`
}

// GetMintReply is the reply from GetMint
type GetMintReply struct {
	Authority string       `json:"authority"`
	Supply    cjson.Uint64 `json:"supply"`
	Decimals  uint8        `json:"decimals"`
}

// GetMint returns the mint's authority, supply and decimals.
func (s *TokenService) GetMint(_ *http.Request, args *GetMintArgs, reply *GetMintReply) error {
	addr, err := parseAddress(args.Mint)
	if err != nil {
		return err
	}
	return s.vm.view(func() error {
		mint, err := s.vm.state.Tokens().GetMint(addr)
		if err != nil {
			return err
		}
		reply.Authority = mint.Authority.String()
		reply.Supply = cjson.Uint64(mint.Supply)
		reply.Decimals = mint.Decimals
		return nil
	})
}
