package madraffle

import (
	"fmt"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

type MadRaffleError uint32

const (
	// Selected raffle is not active
	ErrNotActive MadRaffleError = iota + 0x1770

	// Selected raffle is still active
	ErrStillActive

	// Invalid vault account
	ErrInvalidVault

	// Raffle has already closed
	ErrRaffleClosed

	// Max tickets per user exceeded
	ErrMaxTicketsPerUserExceeded

	// Raffle is already active
	ErrRaffleAlreadyActive

	// No Raffle Tickets Sold
	ErrNoTickets

	// Error Selecting Winner
	ErrNoWinner

	// UNAUTHORIZED
	ErrUnauthorizedSigner

	// Winner already selected
	ErrWinnerAlreadySelected

	// Winner not yet selected
	ErrWinnerNotSelected

	// Raffle PDA does not match ID
	ErrRafflePdaMismatch
)

var errorNames = map[MadRaffleError]string{
	ErrNotActive:                 "NotActive",
	ErrStillActive:               "StillActive",
	ErrInvalidVault:              "InvalidVault",
	ErrRaffleClosed:              "RaffleClosed",
	ErrMaxTicketsPerUserExceeded: "MaxTicketsPerUserExceeded",
	ErrRaffleAlreadyActive:       "RaffleAlreadyActive",
	ErrNoTickets:                 "NoTickets",
	ErrNoWinner:                  "NoWinner",
	ErrUnauthorizedSigner:        "UnauthorizedSigner",
	ErrWinnerAlreadySelected:     "WinnerAlreadySelected",
	ErrWinnerNotSelected:         "WinnerNotSelected",
	ErrRafflePdaMismatch:         "RafflePdaMismatch",
}

var errorMessages = map[MadRaffleError]string{
	ErrNotActive:                 "Selected raffle is not active",
	ErrStillActive:               "Selected raffle is still active",
	ErrInvalidVault:              "Invalid vault account",
	ErrRaffleClosed:              "Raffle has already closed",
	ErrMaxTicketsPerUserExceeded: "Max tickets per user exceeded",
	ErrRaffleAlreadyActive:       "Raffle is already active",
	ErrNoTickets:                 "No Raffle Tickets Sold",
	ErrNoWinner:                  "Error Selecting Winner",
	ErrUnauthorizedSigner:        "UNAUTHORIZED",
	ErrWinnerAlreadySelected:     "Winner already selected",
	ErrWinnerNotSelected:         "Winner not yet selected",
	ErrRafflePdaMismatch:         "Raffle PDA does not match ID",
}

func (e MadRaffleError) Name() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint32(e))
}

func (e MadRaffleError) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return fmt.Sprintf("%s: %s", e.Name(), msg)
	}
	return fmt.Sprintf("unknown mad raffle error: %d", uint32(e))
}

// GetError extracts a raffle program error from a failed transaction. Custom
// codes the program doesn't define are not reported.
func GetError(err error) (MadRaffleError, bool) {
	code, ok := solana.CustomErrorFrom(err)
	if !ok {
		return 0, false
	}

	programErr := MadRaffleError(code)
	if _, ok := errorNames[programErr]; !ok {
		return 0, false
	}
	return programErr, true
}
