package tokenmetadata

import (
	"errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")
)

var (
	PROGRAM_ID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// Metaplex's default rule set for programmable NFTs.
	DEFAULT_RULE_SET = solana.MustPublicKeyFromBase58("eBJLFYPxJmMGKuFwpDWkzxZeUrad92kZRC5BJLpzyT9")
)
