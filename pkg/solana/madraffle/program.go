package madraffle

import (
	"crypto/ed25519"
	"errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/system"
	"github.com/code-payments/mad-raffle/pkg/solana/token"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrTooManyCreators        = errors.New("too many creators")
)

// The raffle program is deployed at a different address per cluster, so every
// builder takes the program id explicitly.
var (
	DEVNET_PROGRAM_ID  = solana.MustPublicKeyFromBase58("GDBJ3Gfvzd1dzBKq5UryHAodUF8k5ZwjvinV6dferSm1")
	MAINNET_PROGRAM_ID = solana.MustPublicKeyFromBase58("MAD67ypEX8PR92g45gP8jtRhg8NNQhdAd4yLkh2BKmD")
)

var (
	SYSTEM_PROGRAM_ID              = ed25519.PublicKey(system.ProgramKey[:])
	SPL_TOKEN_PROGRAM_ID           = token.ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID    = token.AssociatedTokenAccountProgramKey
	TOKEN_METADATA_PROGRAM_ID      = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	AUTHORIZATION_RULES_PROGRAM_ID = solana.MustPublicKeyFromBase58("auth9SigNpDKz4sJJ1DfCTuZrZNSAgh9sFD3rboVmgg")

	SYSVAR_RENT_PUBKEY         = system.RentSysVar
	SYSVAR_INSTRUCTIONS_PUBKEY = system.InstructionsSysVar
)

// Protocol constants enforced on chain.
const (
	TicketPrice       uint64 = 660_000_000 // 0.66 SOL
	TicketFee         uint64 = 20_000_000  // 0.02 SOL
	SuperRaffleFee    uint64 = 10_000_000  // 0.01 SOL
	NewRaffleCost     uint64 = 1_500_000
	MaxTicketsPerUser        = 50
	PointsPerTicket   uint32 = 1
	PointsForSelling  uint32 = 10

	// Creator accounts a single end raffle instruction can pay royalties to.
	MaxCreators = 5
)

// PointsMultiplier is the on-chain bonus multiplier applied to points earned
// while raffle current is active. Early raffles earn up to 10x, decreasing
// linearly to 1x by raffle 100.
func PointsMultiplier(current uint64) uint32 {
	if current == 0 || current >= 100 {
		return 1
	}
	return 10 - uint32((current-1)*9/99)
}
