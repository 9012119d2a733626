package client

import (
	"context"

	"github.com/ava-labs/avalanchego/api"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	cjson "github.com/ava-labs/avalanchego/utils/json"

	"github.com/ouroboros-finance/ouroborosvm/ouroborosvm"
)

// Client defines ouroborosvm client operations.
type Client interface {
	// CreateMint registers a new token class under an authority
	CreateMint(ctx context.Context, mint string, authority string, decimals uint8) error

	// MintTo mints tokens to an owner's associated account
	MintTo(ctx context.Context, mint string, owner string, authority string, amount uint64) error

	// Transfer moves tokens between two owners
	Transfer(ctx context.Context, mint string, from string, to string, amount uint64) error

	// Balance fetches an owner's associated-account balance
	Balance(ctx context.Context, mint string, owner string) (uint64, error)

	// CreatePair creates the pool over two mints
	CreatePair(ctx context.Context, mintA string, mintB string, stable bool) (ids.ID, error)

	// AddLiquidity deposits both sides and mints pool shares
	AddLiquidity(ctx context.Context, provider string, pairID ids.ID, desiredA uint64, desiredB uint64, minA uint64, minB uint64) (*ouroborosvm.AddLiquidityReply, error)

	// RemoveLiquidity burns pool shares for the underlying reserves
	RemoveLiquidity(ctx context.Context, provider string, pairID ids.ID, liquidity uint64) (uint64, uint64, error)

	// Swap trades exact input amounts
	Swap(ctx context.Context, swapper string, pairID ids.ID, amountInA uint64, amountInB uint64, minOutA uint64, minOutB uint64) (*ouroborosvm.SwapReply, error)

	// ClaimFees sweeps the pair's accumulated swap fees to the caller
	ClaimFees(ctx context.Context, provider string, pairID ids.ID) (uint64, uint64, error)

	// GetPair fetches a pair's mints, reserves and share supply
	GetPair(ctx context.Context, pairID ids.ID) (*ouroborosvm.GetPairReply, error)

	// GetOuroboros fetches the emission schedule's state
	GetOuroboros(ctx context.Context, ouroborosID uint64) (*ouroborosvm.GetReply, error)

	// CreateBeneficiary registers a vote target
	CreateBeneficiary(ctx context.Context, ouroborosID uint64, account string) error

	// CreateLocker escrows emission tokens for a period
	CreateLocker(ctx context.Context, creator string, ouroborosID uint64, lockerID ids.ID, amount uint64, period uint64) (*ouroborosvm.CreateLockerReply, error)

	// RedeemLocker returns the escrowed principal after the lock expires
	RedeemLocker(ctx context.Context, holder string, ouroborosID uint64, lockerID ids.ID) (uint64, error)

	// InitializeVote directs a locker's votes at a beneficiary
	InitializeVote(ctx context.Context, voter string, ouroborosID uint64, lockerID ids.ID, account string) error

	// CastVote moves a locker's votes to a different beneficiary
	CastVote(ctx context.Context, voter string, ouroborosID uint64, lockerID ids.ID, account string) error

	// ResetVote withdraws a locker's votes
	ResetVote(ctx context.Context, voter string, ouroborosID uint64, lockerID ids.ID) error

	// ClaimIncentives settles a beneficiary and mints its emission share
	ClaimIncentives(ctx context.Context, ouroborosID uint64, account string) (uint64, error)

	// ReceiveAsset deposits protocol revenue into the reward ledger
	ReceiveAsset(ctx context.Context, sender string, ouroborosID uint64, mint string, snapshotIndex uint64, amount uint64) error

	// CollectFees pays a locker its share of deposited revenue
	CollectFees(ctx context.Context, holder string, ouroborosID uint64, lockerID ids.ID, mint string) (uint64, error)

	// GetLocker fetches a locker's escrow state
	GetLocker(ctx context.Context, lockerID ids.ID) (*ouroborosvm.GetLockerReply, error)

	// GetBeneficiary fetches a beneficiary's vote tally
	GetBeneficiary(ctx context.Context, account string) (*ouroborosvm.GetBeneficiaryReply, error)

	// GetAsset fetches the reward ledger's cursor state for a mint
	GetAsset(ctx context.Context, ouroborosID uint64, mint string) (*ouroborosvm.GetAssetReply, error)

	// GetSnapshot fetches one period's reward bucket
	GetSnapshot(ctx context.Context, ouroborosID uint64, mint string, index uint64) (*ouroborosvm.GetSnapshotReply, error)

	// GetClaimant fetches how far a locker has collected against a mint
	GetClaimant(ctx context.Context, ouroborosID uint64, mint string, lockerID ids.ID) (*ouroborosvm.GetClaimantReply, error)

	// CreateGauge creates a gauge staking a pair's pool shares
	CreateGauge(ctx context.Context, pairID ids.ID, rewardMint string) (ids.ID, error)

	// DepositLiquidity stakes pool shares into a gauge
	DepositLiquidity(ctx context.Context, provider string, gaugeID ids.ID, amount uint64) (*ouroborosvm.DepositLiquidityReply, error)

	// CollectRewards mints rewards into a gauge's reward account
	CollectRewards(ctx context.Context, authority string, gaugeID ids.ID, amount uint64) (uint64, error)

	// GetGauge fetches a gauge's state
	GetGauge(ctx context.Context, gaugeID ids.ID) (*ouroborosvm.GetGaugeReply, error)

	// GetStaker fetches an owner's stake in a gauge
	GetStaker(ctx context.Context, gaugeID ids.ID, owner string) (*ouroborosvm.GetStakerReply, error)
}

// New creates a new client object.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) CreateMint(ctx context.Context, mint string, authority string, decimals uint8) error {
	return cli.req.SendRequest(ctx,
		"token.createMint",
		&ouroborosvm.CreateMintArgs{Mint: mint, Authority: authority, Decimals: decimals},
		&api.EmptyReply{},
	)
}

func (cli *client) MintTo(ctx context.Context, mint string, owner string, authority string, amount uint64) error {
	return cli.req.SendRequest(ctx,
		"token.mintTo",
		&ouroborosvm.MintToArgs{
			Mint:      mint,
			Owner:     owner,
			Authority: authority,
			Amount:    cjson.Uint64(amount),
		},
		&api.EmptyReply{},
	)
}

func (cli *client) Transfer(ctx context.Context, mint string, from string, to string, amount uint64) error {
	return cli.req.SendRequest(ctx,
		"token.transfer",
		&ouroborosvm.TransferArgs{
			Mint:   mint,
			From:   from,
			To:     to,
			Amount: cjson.Uint64(amount),
		},
		&api.EmptyReply{},
	)
}

func (cli *client) Balance(ctx context.Context, mint string, owner string) (uint64, error) {
	resp := new(ouroborosvm.BalanceReply)
	err := cli.req.SendRequest(ctx,
		"token.balance",
		&ouroborosvm.BalanceArgs{Mint: mint, Owner: owner},
		resp,
	)
	return uint64(resp.Balance), err
}

func (cli *client) CreatePair(ctx context.Context, mintA string, mintB string, stable bool) (ids.ID, error) {
	resp := new(ouroborosvm.CreatePairReply)
	err := cli.req.SendRequest(ctx,
		"pools.createPair",
		&ouroborosvm.CreatePairArgs{MintA: mintA, MintB: mintB, Stable: stable},
		resp,
	)
	return resp.PairID, err
}

func (cli *client) AddLiquidity(ctx context.Context, provider string, pairID ids.ID, desiredA uint64, desiredB uint64, minA uint64, minB uint64) (*ouroborosvm.AddLiquidityReply, error) {
	resp := new(ouroborosvm.AddLiquidityReply)
	err := cli.req.SendRequest(ctx,
		"pools.addLiquidity",
		&ouroborosvm.AddLiquidityArgs{
			Provider: provider,
			PairID:   pairID,
			DesiredA: cjson.Uint64(desiredA),
			DesiredB: cjson.Uint64(desiredB),
			MinA:     cjson.Uint64(minA),
			MinB:     cjson.Uint64(minB),
		},
		resp,
	)
	return resp, err
}

func (cli *client) RemoveLiquidity(ctx context.Context, provider string, pairID ids.ID, liquidity uint64) (uint64, uint64, error) {
	resp := new(ouroborosvm.RemoveLiquidityReply)
	err := cli.req.SendRequest(ctx,
		"pools.removeLiquidity",
		&ouroborosvm.RemoveLiquidityArgs{
			Provider:  provider,
			PairID:    pairID,
			Liquidity: cjson.Uint64(liquidity),
		},
		resp,
	)
	return uint64(resp.AmountA), uint64(resp.AmountB), err
}

func (cli *client) Swap(ctx context.Context, swapper string, pairID ids.ID, amountInA uint64, amountInB uint64, minOutA uint64, minOutB uint64) (*ouroborosvm.SwapReply, error) {
	resp := new(ouroborosvm.SwapReply)
	err := cli.req.SendRequest(ctx,
		"pools.swap",
		&ouroborosvm.SwapArgs{
			Swapper:   swapper,
			PairID:    pairID,
			AmountInA: cjson.Uint64(amountInA),
			AmountInB: cjson.Uint64(amountInB),
			MinOutA:   cjson.Uint64(minOutA),
			MinOutB:   cjson.Uint64(minOutB),
		},
		resp,
	)
	return resp, err
}

func (cli *client) ClaimFees(ctx context.Context, provider string, pairID ids.ID) (uint64, uint64, error) {
	resp := new(ouroborosvm.ClaimFeesReply)
	err := cli.req.SendRequest(ctx,
		"pools.claimFees",
		&ouroborosvm.ClaimFeesArgs{Provider: provider, PairID: pairID},
		resp,
	)
	return uint64(resp.AmountA), uint64(resp.AmountB), err
}

func (cli *client) GetPair(ctx context.Context, pairID ids.ID) (*ouroborosvm.GetPairReply, error) {
	resp := new(ouroborosvm.GetPairReply)
	err := cli.req.SendRequest(ctx,
		"pools.getPair",
		&ouroborosvm.GetPairArgs{PairID: pairID},
		resp,
	)
	return resp, err
}

func (cli *client) GetOuroboros(ctx context.Context, ouroborosID uint64) (*ouroborosvm.GetReply, error) {
	resp := new(ouroborosvm.GetReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.get",
		&ouroborosvm.GetArgs{OuroborosID: cjson.Uint64(ouroborosID)},
		resp,
	)
	return resp, err
}

func (cli *client) CreateBeneficiary(ctx context.Context, ouroborosID uint64, account string) error {
	return cli.req.SendRequest(ctx,
		"ouroboros.createBeneficiary",
		&ouroborosvm.CreateBeneficiaryArgs{
			OuroborosID: cjson.Uint64(ouroborosID),
			Account:     account,
		},
		&api.EmptyReply{},
	)
}

func (cli *client) CreateLocker(ctx context.Context, creator string, ouroborosID uint64, lockerID ids.ID, amount uint64, period uint64) (*ouroborosvm.CreateLockerReply, error) {
	resp := new(ouroborosvm.CreateLockerReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.createLocker",
		&ouroborosvm.CreateLockerArgs{
			Creator:     creator,
			OuroborosID: cjson.Uint64(ouroborosID),
			LockerID:    lockerID,
			Amount:      cjson.Uint64(amount),
			Period:      cjson.Uint64(period),
		},
		resp,
	)
	return resp, err
}

func (cli *client) RedeemLocker(ctx context.Context, holder string, ouroborosID uint64, lockerID ids.ID) (uint64, error) {
	resp := new(ouroborosvm.RedeemLockerReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.redeemLocker",
		&ouroborosvm.RedeemLockerArgs{
			Holder:      holder,
			OuroborosID: cjson.Uint64(ouroborosID),
			LockerID:    lockerID,
		},
		resp,
	)
	return uint64(resp.Amount), err
}

func (cli *client) InitializeVote(ctx context.Context, voter string, ouroborosID uint64, lockerID ids.ID, account string) error {
	return cli.req.SendRequest(ctx,
		"ouroboros.initializeVote",
		&ouroborosvm.VoteArgs{
			Voter:       voter,
			OuroborosID: cjson.Uint64(ouroborosID),
			LockerID:    lockerID,
			Account:     account,
		},
		&api.EmptyReply{},
	)
}

func (cli *client) CastVote(ctx context.Context, voter string, ouroborosID uint64, lockerID ids.ID, account string) error {
	return cli.req.SendRequest(ctx,
		"ouroboros.castVote",
		&ouroborosvm.VoteArgs{
			Voter:       voter,
			OuroborosID: cjson.Uint64(ouroborosID),
			LockerID:    lockerID,
			Account:     account,
		},
		&api.EmptyReply{},
	)
}

func (cli *client) ResetVote(ctx context.Context, voter string, ouroborosID uint64, lockerID ids.ID) error {
	return cli.req.SendRequest(ctx,
		"ouroboros.resetVote",
		&ouroborosvm.ResetVoteArgs{
			Voter:       voter,
			OuroborosID: cjson.Uint64(ouroborosID),
			LockerID:    lockerID,
		},
		&api.EmptyReply{},
	)
}

func (cli *client) ClaimIncentives(ctx context.Context, ouroborosID uint64, account string) (uint64, error) {
	resp := new(ouroborosvm.ClaimIncentivesReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.claimIncentives",
		&ouroborosvm.ClaimIncentivesArgs{
			OuroborosID: cjson.Uint64(ouroborosID),
			Account:     account,
		},
		resp,
	)
	return uint64(resp.Amount), err
}

func (cli *client) ReceiveAsset(ctx context.Context, sender string, ouroborosID uint64, mint string, snapshotIndex uint64, amount uint64) error {
	return cli.req.SendRequest(ctx,
		"ouroboros.receiveAsset",
		&ouroborosvm.ReceiveAssetArgs{
			Sender:        sender,
			OuroborosID:   cjson.Uint64(ouroborosID),
			Mint:          mint,
			SnapshotIndex: cjson.Uint64(snapshotIndex),
			Amount:        cjson.Uint64(amount),
		},
		&api.EmptyReply{},
	)
}

func (cli *client) CollectFees(ctx context.Context, holder string, ouroborosID uint64, lockerID ids.ID, mint string) (uint64, error) {
	resp := new(ouroborosvm.CollectFeesReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.collectFees",
		&ouroborosvm.CollectFeesArgs{
			Holder:      holder,
			OuroborosID: cjson.Uint64(ouroborosID),
			LockerID:    lockerID,
			Mint:        mint,
		},
		resp,
	)
	return uint64(resp.Amount), err
}

func (cli *client) GetLocker(ctx context.Context, lockerID ids.ID) (*ouroborosvm.GetLockerReply, error) {
	resp := new(ouroborosvm.GetLockerReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.getLocker",
		&ouroborosvm.GetLockerArgs{LockerID: lockerID},
		resp,
	)
	return resp, err
}

func (cli *client) GetBeneficiary(ctx context.Context, account string) (*ouroborosvm.GetBeneficiaryReply, error) {
	resp := new(ouroborosvm.GetBeneficiaryReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.getBeneficiary",
		&ouroborosvm.GetBeneficiaryArgs{Account: account},
		resp,
	)
	return resp, err
}

func (cli *client) GetAsset(ctx context.Context, ouroborosID uint64, mint string) (*ouroborosvm.GetAssetReply, error) {
	resp := new(ouroborosvm.GetAssetReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.getAsset",
		&ouroborosvm.GetAssetArgs{
			OuroborosID: cjson.Uint64(ouroborosID),
			Mint:        mint,
		},
		resp,
	)
	return resp, err
}

func (cli *client) GetSnapshot(ctx context.Context, ouroborosID uint64, mint string, index uint64) (*ouroborosvm.GetSnapshotReply, error) {
	resp := new(ouroborosvm.GetSnapshotReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.getSnapshot",
		&ouroborosvm.GetSnapshotArgs{
			OuroborosID: cjson.Uint64(ouroborosID),
			Mint:        mint,
			Index:       cjson.Uint64(index),
		},
		resp,
	)
	return resp, err
}

func (cli *client) GetClaimant(ctx context.Context, ouroborosID uint64, mint string, lockerID ids.ID) (*ouroborosvm.GetClaimantReply, error) {
	resp := new(ouroborosvm.GetClaimantReply)
	err := cli.req.SendRequest(ctx,
		"ouroboros.getClaimant",
		&ouroborosvm.GetClaimantArgs{
			OuroborosID: cjson.Uint64(ouroborosID),
			Mint:        mint,
			LockerID:    lockerID,
		},
		resp,
	)
	return resp, err
}

func (cli *client) CreateGauge(ctx context.Context, pairID ids.ID, rewardMint string) (ids.ID, error) {
	resp := new(ouroborosvm.CreateGaugeReply)
	err := cli.req.SendRequest(ctx,
		"gauges.createGauge",
		&ouroborosvm.CreateGaugeArgs{PairID: pairID, RewardMint: rewardMint},
		resp,
	)
	return resp.GaugeID, err
}

func (cli *client) DepositLiquidity(ctx context.Context, provider string, gaugeID ids.ID, amount uint64) (*ouroborosvm.DepositLiquidityReply, error) {
	resp := new(ouroborosvm.DepositLiquidityReply)
	err := cli.req.SendRequest(ctx,
		"gauges.depositLiquidity",
		&ouroborosvm.DepositLiquidityArgs{
			Provider: provider,
			GaugeID:  gaugeID,
			Amount:   cjson.Uint64(amount),
		},
		resp,
	)
	return resp, err
}

func (cli *client) CollectRewards(ctx context.Context, authority string, gaugeID ids.ID, amount uint64) (uint64, error) {
	resp := new(ouroborosvm.CollectRewardsReply)
	err := cli.req.SendRequest(ctx,
		"gauges.collectRewards",
		&ouroborosvm.CollectRewardsArgs{
			Authority: authority,
			GaugeID:   gaugeID,
			Amount:    cjson.Uint64(amount),
		},
		resp,
	)
	return uint64(resp.CumulativeFees), err
}

func (cli *client) GetGauge(ctx context.Context, gaugeID ids.ID) (*ouroborosvm.GetGaugeReply, error) {
	resp := new(ouroborosvm.GetGaugeReply)
	err := cli.req.SendRequest(ctx,
		"gauges.getGauge",
		&ouroborosvm.GetGaugeArgs{GaugeID: gaugeID},
		resp,
	)
	return resp, err
}

func (cli *client) GetStaker(ctx context.Context, gaugeID ids.ID, owner string) (*ouroborosvm.GetStakerReply, error) {
	resp := new(ouroborosvm.GetStakerReply)
	err := cli.req.SendRequest(ctx,
		"gauges.getStaker",
		&ouroborosvm.GetStakerArgs{GaugeID: gaugeID, Owner: owner},
		resp,
	)
	return resp, err
}
