// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"encoding/json"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ouroboros-finance/ouroborosvm/ledger"
)

var errEmptyGenesis = errors.New("genesis must configure an ouroboros instance")

// Genesis is the JSON document the VM boots an empty database from: external
// mints with their initial allocations, plus the emission schedule.
type Genesis struct {
	Mints     []GenesisMint    `json:"mints"`
	Ouroboros GenesisOuroboros `json:"ouroboros"`
}

// GenesisMint declares an external token and who starts out holding it.
type GenesisMint struct {
	Mint        string              `json:"mint"`
	Authority   string              `json:"authority"`
	Decimals    uint8               `json:"decimals"`
	Allocations []GenesisAllocation `json:"allocations"`
}

type GenesisAllocation struct {
	Owner  string `json:"owner"`
	Amount uint64 `json:"amount"`
}

// GenesisOuroboros configures the emission schedule created at boot.
type GenesisOuroboros struct {
	Creator         string `json:"creator"`
	ID              uint64 `json:"id"`
	InitialSupply   uint64 `json:"initialSupply"`
	Period          uint64 `json:"period"`
	StartDate       int64  `json:"startDate"`
	ExpansionFactor uint64 `json:"expansionFactor"`
	TimeMultiplier  uint64 `json:"timeMultiplier"`
}

func ParseGenesis(genesisBytes []byte) (*Genesis, error) {
	genesis := &Genesis{}
	if err := json.Unmarshal(genesisBytes, genesis); err != nil {
		return nil, err
	}
	if genesis.Ouroboros.Period == 0 {
		return nil, errEmptyGenesis
	}
	return genesis, nil
}

// apply initializes the state from [genesis]. Called exactly once, on the
// first boot over an empty database, before the initial commit.
func (vm *VM) apply(genesis *Genesis) error {
	for _, mint := range genesis.Mints {
		mintAddr, err := ids.ShortFromString(mint.Mint)
		if err != nil {
			return err
		}
		authority, err := ids.ShortFromString(mint.Authority)
		if err != nil {
			return err
		}
		if _, err := vm.state.Tokens().CreateMint(mintAddr, authority, mint.Decimals); err != nil {
			return err
		}
		for _, allocation := range mint.Allocations {
			owner, err := ids.ShortFromString(allocation.Owner)
			if err != nil {
				return err
			}
			account := ledger.AssociatedAccount(owner, mintAddr)
			if _, err := vm.state.Tokens().EnsureAccount(account, mintAddr, owner); err != nil {
				return err
			}
			if err := vm.state.Tokens().MintTo(mintAddr, account, authority, allocation.Amount); err != nil {
				return err
			}
		}
	}

	creator, err := ids.ShortFromString(genesis.Ouroboros.Creator)
	if err != nil {
		return err
	}
	_, err = vm.escrow.InitializeOuroboros(
		creator,
		genesis.Ouroboros.ID,
		genesis.Ouroboros.InitialSupply,
		genesis.Ouroboros.Period,
		genesis.Ouroboros.StartDate,
		genesis.Ouroboros.ExpansionFactor,
		genesis.Ouroboros.TimeMultiplier,
	)
	return err
}
