package raffle

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
	"github.com/code-payments/mad-raffle/pkg/solana/token"
)

// CreateInitializeInstruction builds the one-time instruction creating the
// tracker, the super vault and raffle #1, signed by the wallet as authority
func (c *Client) CreateInitializeInstruction() (solana.Instruction, error) {
	authority, err := c.requireWallet()
	if err != nil {
		return solana.Instruction{}, err
	}

	tracker, err := c.GetTrackerAddress()
	if err != nil {
		return solana.Instruction{}, err
	}
	superVault, err := c.GetSuperVaultAddress()
	if err != nil {
		return solana.Instruction{}, err
	}
	genesis, _, err := madraffle.GetRaffleAddress(&madraffle.GetRaffleAddressArgs{
		Program:  c.cluster.ProgramId,
		RaffleId: 1,
	})
	if err != nil {
		return solana.Instruction{}, err
	}

	return madraffle.NewInitializeInstruction(
		c.cluster.ProgramId,
		&madraffle.InitializeInstructionAccounts{
			Tracker:    tracker,
			SuperVault: superVault,
			Raffle:     genesis,
			Authority:  authority,
		},
		&madraffle.InitializeInstructionArgs{},
	), nil
}

// CreateBuyTicketInstruction builds a ticket purchase in the bound current
// raffle for the wallet
func (c *Client) CreateBuyTicketInstruction() (solana.Instruction, error) {
	buyer, err := c.requireWallet()
	if err != nil {
		return solana.Instruction{}, err
	}

	current, ok := c.CurrentRaffle()
	if !ok {
		return solana.Instruction{}, ErrNoCurrentRaffle
	}

	tracker, err := c.GetTrackerAddress()
	if err != nil {
		return solana.Instruction{}, err
	}
	superVault, err := c.GetSuperVaultAddress()
	if err != nil {
		return solana.Instruction{}, err
	}

	return madraffle.NewBuyTicketInstruction(
		c.cluster.ProgramId,
		&madraffle.BuyTicketInstructionAccounts{
			Raffle:     current.Address,
			Buyer:      buyer,
			FeeVault:   c.cluster.FeeVault,
			Tracker:    tracker,
			SuperVault: superVault,
		},
		&madraffle.BuyTicketInstructionArgs{},
	), nil
}

// CreateEndRaffleInstruction builds the sale of the wallet's nftMint to the
// bound current raffle, which ends it and opens the next one
func (c *Client) CreateEndRaffleInstruction(ctx context.Context, nftMint ed25519.PublicKey) (solana.Instruction, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreateEndRaffleInstruction")
	defer tracer.End()

	owner, err := c.requireWallet()
	if err != nil {
		return solana.Instruction{}, err
	}

	current, ok := c.CurrentRaffle()
	if !ok {
		return solana.Instruction{}, ErrNoCurrentRaffle
	}
	tracer.AddAttribute("raffle_id", current.Id)

	sourceAta, err := token.GetAssociatedAccount(owner, nftMint)
	if err != nil {
		return solana.Instruction{}, err
	}
	targetAta, err := token.GetAssociatedAccount(current.Address, nftMint)
	if err != nil {
		return solana.Instruction{}, err
	}

	pnft, err := c.PreparePnftAccounts(ctx, nftMint, sourceAta, targetAta)
	if err != nil {
		tracer.OnError(err)
		return solana.Instruction{}, err
	}

	next, err := c.GetRafflePda(ctx, RaffleById(current.Id+1))
	if err != nil {
		return solana.Instruction{}, err
	}
	tracker, err := c.GetTrackerAddress()
	if err != nil {
		return solana.Instruction{}, err
	}

	return madraffle.NewEndRaffleInstruction(
		c.cluster.ProgramId,
		&madraffle.EndRaffleInstructionAccounts{
			Owner:             owner,
			Transfer:          pnft.transferAccounts(),
			Raffle:            current.Address,
			NewRaffle:         next.Address,
			Tracker:           tracker,
			Creators:          pnft.Creators,
			RemainingAccounts: pnft.RemainingAccounts,
		},
		&madraffle.EndRaffleInstructionArgs{
			AuthorizationData: pnft.AuthorizationData,
			RulesAccPresent:   pnft.RulesAccPresent,
		},
	)
}

// CreateSelectWinnerInstruction builds the authority's winner selection for
// raffleId, passing a fresh address as entropy
func (c *Client) CreateSelectWinnerInstruction(ctx context.Context, raffleId uint64) (solana.Instruction, error) {
	if !c.IsReady() {
		return solana.Instruction{}, ErrNotReady
	}

	raffle, err := c.GetRafflePda(ctx, RaffleById(raffleId))
	if err != nil {
		return solana.Instruction{}, err
	}

	random, err := c.randomKey()
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to generate random address")
	}

	return madraffle.NewSelectWinnerInstruction(
		c.cluster.ProgramId,
		&madraffle.SelectWinnerInstructionAccounts{
			Raffle:    raffle.Address,
			Authority: c.cluster.Authority,
			Random:    random,
		},
		&madraffle.SelectWinnerInstructionArgs{
			RaffleId: raffle.Id,
		},
	), nil
}

// CreatePickWinnerInstruction is CreateSelectWinnerInstruction for the
// program variant that also reads the configured price feed
func (c *Client) CreatePickWinnerInstruction(ctx context.Context, raffleId uint64) (solana.Instruction, error) {
	if !c.IsReady() {
		return solana.Instruction{}, ErrNotReady
	}

	raffle, err := c.GetRafflePda(ctx, RaffleById(raffleId))
	if err != nil {
		return solana.Instruction{}, err
	}

	random, err := c.randomKey()
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to generate random address")
	}

	return madraffle.NewPickWinnerInstruction(
		c.cluster.ProgramId,
		&madraffle.PickWinnerInstructionAccounts{
			Raffle:    raffle.Address,
			Authority: c.cluster.Authority,
			Random:    random,
			PriceFeed: c.cluster.PriceFeed,
		},
		&madraffle.PickWinnerInstructionArgs{
			RaffleId: raffle.Id,
		},
	), nil
}

// CreateDistributePrizeInstruction builds the transfer of raffleId's prize
// from the raffle to its winner, signed by the wallet. Whether the raffle is
// ready for distribution is left to the program.
func (c *Client) CreateDistributePrizeInstruction(ctx context.Context, raffleId uint64) (solana.Instruction, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "CreateDistributePrizeInstruction")
	defer tracer.End()

	authority, err := c.requireWallet()
	if err != nil {
		return solana.Instruction{}, err
	}

	details, err := c.GetRaffleDetails(ctx, RaffleById(raffleId))
	if err != nil {
		tracer.OnError(err)
		return solana.Instruction{}, err
	}
	if details.Prize == nil {
		return solana.Instruction{}, ErrPrizeNotSet
	}
	if len(details.Winner) == 0 {
		return solana.Instruction{}, ErrWinnerNotSet
	}

	dest, err := token.GetAssociatedAccount(details.Winner, details.Prize.Mint)
	if err != nil {
		return solana.Instruction{}, err
	}

	pnft, err := c.PreparePnftAccounts(ctx, details.Prize.Mint, details.Prize.Ata, dest)
	if err != nil {
		tracer.OnError(err)
		return solana.Instruction{}, err
	}

	return madraffle.NewDistributePrizeInstruction(
		c.cluster.ProgramId,
		&madraffle.DistributePrizeInstructionAccounts{
			Authority:         authority,
			Winner:            details.Winner,
			Transfer:          pnft.transferAccounts(),
			Raffle:            details.Address,
			RemainingAccounts: pnft.RemainingAccounts,
		},
		&madraffle.DistributePrizeInstructionArgs{
			RaffleId:          details.Id,
			AuthorizationData: pnft.AuthorizationData,
			RulesAccPresent:   pnft.RulesAccPresent,
		},
	)
}

// requireWallet returns the wallet's public key on a ready client
func (c *Client) requireWallet() (ed25519.PublicKey, error) {
	if !c.IsReady() {
		return nil, ErrNotReady
	}
	if c.wallet == nil {
		return nil, apierror.SolanaQueryError(apierror.NoWalletConnected)
	}
	return c.wallet.PublicKey(), nil
}
