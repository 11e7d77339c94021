package raffle

import (
	"context"
	"crypto/ed25519"
	"math"
	"math/bits"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
)

const basisPointsDenominator = 10_000

// RaffleDetails is a decoded raffle account together with its pot.
type RaffleDetails struct {
	madraffle.RaffleAccount

	Address ed25519.PublicKey

	// Lamports is the raffle account's raw balance
	Lamports uint64

	// AvailableLamports is the balance above the rent kept for both the
	// current account and its successor. It's negative when the balance
	// doesn't cover both.
	AvailableLamports int64

	// SellerShareLamports is what a seller ending the raffle receives, after
	// the protocol fee. Never negative.
	SellerShareLamports uint64
}

// GetRaffleDetails fetches and decodes a raffle, computing its distributable
// pot
func (c *Client) GetRaffleDetails(ctx context.Context, target RaffleTarget) (*RaffleDetails, error) {
	if !c.IsReady() {
		return nil, ErrNotReady
	}

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetRaffleDetails")
	defer tracer.End()

	raffle, err := c.GetRafflePda(ctx, target)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}
	tracer.AddAttribute("raffle_id", raffle.Id)

	details, err := c.getRaffleDetails(ctx, raffle)
	if err != nil {
		tracer.OnError(err)
		return nil, apierror.SolanaQueryError(apierror.UnableToFindRaffle).WithCause(err)
	}
	return details, nil
}

func (c *Client) getRaffleDetails(ctx context.Context, raffle *CurrentRaffle) (*RaffleDetails, error) {
	info, err := c.sc.GetAccountInfo(raffle.Address, c.commitment(ctx))
	if err != nil {
		return nil, err
	}

	var account madraffle.RaffleAccount
	if err := account.Unmarshal(info.Data); err != nil {
		return nil, err
	}

	newRaffleRent, err := c.sc.GetMinimumBalanceForRentExemption(c.conf.referenceAccountSize.Get(ctx))
	if err != nil {
		return nil, err
	}
	currentRent, err := c.sc.GetMinimumBalanceForRentExemption(uint64(len(info.Data)))
	if err != nil {
		return nil, err
	}

	available := int64(info.Lamports) - int64(newRaffleRent) - int64(currentRent)

	return &RaffleDetails{
		RaffleAccount:       account,
		Address:             raffle.Address,
		Lamports:            info.Lamports,
		AvailableLamports:   available,
		SellerShareLamports: SellerShare(available, c.conf.feeBasisPoints.Get(ctx)),
	}, nil
}

// SellerShare removes a fee of feeBasisPoints from available, rounding down:
// floor(available * 10000 / (10000 + feeBasisPoints)). Non-positive balances
// have no share.
func SellerShare(available int64, feeBasisPoints uint64) uint64 {
	if available <= 0 || feeBasisPoints > math.MaxUint64-basisPointsDenominator {
		return 0
	}

	// 128 bit intermediate so large balances can't overflow. The high word
	// is always below the denominator, as Div64 requires.
	hi, lo := bits.Mul64(uint64(available), basisPointsDenominator)
	share, _ := bits.Div64(hi, lo, basisPointsDenominator+feeBasisPoints)
	return share
}

// GetUserTickets returns how many tickets user holds in raffle
func (c *Client) GetUserTickets(user ed25519.PublicKey, raffle *RaffleDetails) uint32 {
	if raffle == nil {
		return 0
	}
	return raffle.UserTickets(user)
}

// GetTotalTickets returns how many tickets were sold in raffle
func (c *Client) GetTotalTickets(raffle *RaffleDetails) uint32 {
	if raffle == nil {
		return 0
	}
	return raffle.TotalTickets()
}
