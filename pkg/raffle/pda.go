package raffle

import (
	"context"
	"crypto/ed25519"
	"math"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
)

// Largest id accepted from a float, past which not every integer is
// representable.
const maxSafeRaffleId = 1<<53 - 1

// RaffleTarget selects a raffle either by id or as the tracker's current
// raffle. Current takes precedence over RaffleId.
type RaffleTarget struct {
	RaffleId *uint64
	Current  bool
}

func RaffleById(id uint64) RaffleTarget {
	return RaffleTarget{RaffleId: &id}
}

// CurrentRaffleTarget resolves to the tracker's current raffle.
var CurrentRaffleTarget = RaffleTarget{Current: true}

// CurrentRaffle is a resolved raffle id and its address.
type CurrentRaffle struct {
	Id      uint64
	Address ed25519.PublicKey
}

// ValidateRaffleId rejects a missing or zero raffle id.
func ValidateRaffleId(id *uint64) error {
	if id == nil || *id < 1 {
		return apierror.SolanaQueryError(apierror.InvalidArgument)
	}
	return nil
}

// ValidateRaffleIdValue converts an untyped numeric id, rejecting
// non-positive, non-integral and non-finite values.
func ValidateRaffleIdValue(value float64) (uint64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apierror.SolanaQueryError(apierror.InvalidArgument)
	}
	if value < 1 || value != math.Trunc(value) || value > maxSafeRaffleId {
		return 0, apierror.SolanaQueryError(apierror.InvalidArgument)
	}
	return uint64(value), nil
}

func (c *Client) GetTrackerAddress() (ed25519.PublicKey, error) {
	address, _, err := madraffle.GetTrackerAddress(c.cluster.ProgramId)
	return address, err
}

func (c *Client) GetSuperVaultAddress() (ed25519.PublicKey, error) {
	address, _, err := madraffle.GetSuperVaultAddress(c.cluster.ProgramId)
	return address, err
}

// GetCurrentRaffleId reads the tracker's current raffle id
func (c *Client) GetCurrentRaffleId(ctx context.Context) (uint64, error) {
	if !c.IsReady() {
		return 0, ErrNotReady
	}

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetCurrentRaffleId")
	defer tracer.End()

	tracker, err := c.getTracker(ctx)
	if err != nil {
		tracer.OnError(err)
		return 0, apierror.SolanaQueryError(apierror.UnableToFindCurrentRaffle).WithCause(err)
	}
	return tracker.CurrentRaffle, nil
}

// GetRafflePda resolves target to a raffle id and address. It does not change
// the bound current raffle; see BindCurrentRaffle.
func (c *Client) GetRafflePda(ctx context.Context, target RaffleTarget) (*CurrentRaffle, error) {
	id := target.RaffleId
	if target.Current {
		current, err := c.GetCurrentRaffleId(ctx)
		if err != nil {
			return nil, err
		}
		id = &current
	}

	if err := ValidateRaffleId(id); err != nil {
		return nil, err
	}

	address, _, err := madraffle.GetRaffleAddress(&madraffle.GetRaffleAddressArgs{
		Program:  c.cluster.ProgramId,
		RaffleId: *id,
	})
	if err != nil {
		return nil, err
	}

	return &CurrentRaffle{
		Id:      *id,
		Address: address,
	}, nil
}

// BindCurrentRaffle resolves the tracker's current raffle and binds it as the
// target of buy and sell instructions.
func (c *Client) BindCurrentRaffle(ctx context.Context) (*CurrentRaffle, error) {
	current, err := c.GetRafflePda(ctx, CurrentRaffleTarget)
	if err != nil {
		return nil, err
	}
	c.SetCurrentRaffle(*current)
	return current, nil
}

func (c *Client) SetCurrentRaffle(current CurrentRaffle) {
	c.currentMu.Lock()
	defer c.currentMu.Unlock()

	cloned := current
	cloned.Address = append(ed25519.PublicKey(nil), current.Address...)
	c.current = &cloned
}

func (c *Client) CurrentRaffle() (CurrentRaffle, bool) {
	c.currentMu.RLock()
	defer c.currentMu.RUnlock()

	if c.current == nil {
		return CurrentRaffle{}, false
	}
	return *c.current, true
}

func (c *Client) getTracker(ctx context.Context) (*madraffle.RaffleTrackerAccount, error) {
	if !c.IsReady() {
		return nil, ErrNotReady
	}

	address, err := c.GetTrackerAddress()
	if err != nil {
		return nil, err
	}

	info, err := c.sc.GetAccountInfo(address, c.commitment(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tracker account")
	}

	var tracker madraffle.RaffleTrackerAccount
	if err := tracker.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrap(err, "failed to decode tracker account")
	}
	return &tracker, nil
}
