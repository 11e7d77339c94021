package computebudget

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

// Instruction discriminators. The first two are deprecated by the runtime and
// only reserve their slots.
const (
	_ uint8 = iota // RequestUnits
	_              // RequestHeapFrame
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
)

// MaxComputeUnitLimit is the most compute a single transaction may request.
const MaxComputeUnitLimit = 1_400_000

// SetComputeUnitLimit requests a compute budget for the transaction. Limits
// above MaxComputeUnitLimit are capped.
func SetComputeUnitLimit(computeUnitLimit uint32) solana.Instruction {
	if computeUnitLimit > MaxComputeUnitLimit {
		computeUnitLimit = MaxComputeUnitLimit
	}

	data := make([]byte, 5)
	data[0] = commandSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:], computeUnitLimit)
	return solana.NewInstruction(ProgramKey, data)
}

// SetComputeUnitPrice sets the priority fee, in micro-lamports per compute
// unit.
func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	data := make([]byte, 9)
	data[0] = commandSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:], microLamports)
	return solana.NewInstruction(ProgramKey, data)
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	payload, err := commandPayload(data, commandSetComputeUnitLimit, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(payload), nil
}

func ParseSetComputeUnitPriceIxnData(data []byte) (uint64, error) {
	payload, err := commandPayload(data, commandSetComputeUnitPrice, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(payload), nil
}

func commandPayload(data []byte, command uint8, size int) ([]byte, error) {
	if len(data) != 1+size {
		return nil, errors.Errorf("invalid length: %d", len(data))
	}
	if data[0] != command {
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "unexpected command %d", data[0])
	}
	return data[1:], nil
}
