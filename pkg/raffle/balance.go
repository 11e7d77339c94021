package raffle

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/code-payments/mad-raffle/pkg/metrics"
)

const lamportsPerSolExponent = 9

// GetUserBalance returns the wallet's balance in lamports
func (c *Client) GetUserBalance(ctx context.Context) (uint64, error) {
	owner, err := c.requireWallet()
	if err != nil {
		return 0, err
	}

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetUserBalance")
	defer tracer.End()

	balance, err := c.sc.GetBalance(owner)
	if err != nil {
		tracer.OnError(err)
		return 0, err
	}
	return balance, nil
}

// LamportsToSol converts lamports to SOL without rounding
func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -lamportsPerSolExponent)
}

// SignedLamportsToSol is LamportsToSol for balances that may be negative
func SignedLamportsToSol(lamports int64) decimal.Decimal {
	return decimal.New(lamports, -lamportsPerSolExponent)
}
