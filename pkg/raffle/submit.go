package raffle

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/computebudget"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
)

// TransactionKind names what a submitted transaction does.
type TransactionKind uint8

const (
	TransactionKindUnknown TransactionKind = iota
	TransactionKindInitialize
	TransactionKindBuyTicket
	TransactionKindEndRaffle
	TransactionKindSelectWinner
	TransactionKindPickWinner
	TransactionKindDistributePrize
)

func (k TransactionKind) String() string {
	switch k {
	case TransactionKindInitialize:
		return "initialize"
	case TransactionKindBuyTicket:
		return "buy_ticket"
	case TransactionKindEndRaffle:
		return "end_raffle"
	case TransactionKindSelectWinner:
		return "select_winner"
	case TransactionKindPickWinner:
		return "pick_winner"
	case TransactionKindDistributePrize:
		return "distribute_prize"
	}
	return "unknown"
}

// transfersPnft is true for transactions moving a programmable NFT, which
// need more compute than the default budget
func (k TransactionKind) transfersPnft() bool {
	return k == TransactionKindEndRaffle || k == TransactionKindDistributePrize
}

// SubmitInstructions signs ixns with the wallet as fee payer, submits them in
// one transaction and waits for confirmation. Failed transactions are never
// resubmitted.
func (c *Client) SubmitInstructions(ctx context.Context, kind TransactionKind, ixns ...solana.Instruction) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "SubmitInstructions")
	defer tracer.End()

	payer, err := c.requireWallet()
	if err != nil {
		return solana.Signature{}, err
	}

	submissionId := uuid.New().String()
	log := c.log.WithFields(logrus.Fields{
		"method":        "SubmitInstructions",
		"kind":          kind.String(),
		"submission_id": submissionId,
	})
	tracer.AddAttribute("kind", kind.String())

	if len(ixns) == 0 {
		return solana.Signature{}, apierror.SolanaTxError(apierror.FailedToGenerateIx).WithCause(errors.New("no instructions"))
	}

	var budget []solana.Instruction
	if kind.transfersPnft() {
		limit := c.conf.sellComputeUnitLimit.Get(ctx)
		if limit > math.MaxUint32 {
			limit = math.MaxUint32
		}
		if limit > 0 {
			budget = append(budget, computebudget.SetComputeUnitLimit(uint32(limit)))
		}
	}
	if price := c.conf.computeUnitPrice.Get(ctx); price > 0 {
		budget = append(budget, computebudget.SetComputeUnitPrice(price))
	}
	ixns = append(budget, ixns...)

	blockhash, err := c.sc.GetLatestBlockhash()
	if err != nil {
		tracer.OnError(err)
		return solana.Signature{}, apierror.SolanaTxError(apierror.FailedToGenerateIx).WithCause(err)
	}

	txn := solana.NewTransaction(payer, ixns...)
	txn.SetBlockhash(blockhash)

	if err := c.wallet.SignTransaction(ctx, &txn); err != nil {
		if !apierror.IsBenign(err) {
			tracer.OnError(err)
		}
		return solana.Signature{}, apierror.SolanaTxError(apierror.FailedToGenerateIx).WithCause(err)
	}

	commitment := c.commitment(ctx)

	sig, err := c.sc.SubmitTransaction(txn, commitment)
	log = log.WithField("signature", sig.String())
	if err != nil {
		tracer.OnError(err)
		logTransactionError(log, err)
		return sig, apierror.SolanaTxError(apierror.FailedToConfirm).WithCause(err)
	}

	if _, err := c.sc.GetSignatureStatus(sig, commitment); err != nil {
		tracer.OnError(err)
		logTransactionError(log, err)
		return sig, apierror.SolanaTxError(apierror.FailedToConfirm).WithCause(err)
	}

	log.Debug("transaction confirmed")
	metrics.RecordEvent(ctx, transactionConfirmedEventName, map[string]interface{}{
		"kind":          kind.String(),
		"signature":     sig.String(),
		"submission_id": submissionId,
		"cluster":       c.cluster.Name,
	})
	return sig, nil
}

func logTransactionError(log *logrus.Entry, err error) {
	if programErr, ok := madraffle.GetError(err); ok {
		log = log.WithField("program_error", programErr.Name())
	}
	log.WithError(err).Info("transaction failed")
}
