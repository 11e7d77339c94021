package raffle

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/apierror"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/computebudget"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
	"github.com/code-payments/mad-raffle/pkg/testutil"
)

type rejectingWallet struct {
	pub ed25519.PublicKey
}

func (w *rejectingWallet) PublicKey() ed25519.PublicKey {
	return w.pub
}

func (w *rejectingWallet) SignTransaction(_ context.Context, _ *solana.Transaction) error {
	return errors.New("User rejected the request.")
}

func bindBuyTicket(t *testing.T, env *testEnv) solana.Instruction {
	env.setTracker(t, 1)
	_, err := env.client.BindCurrentRaffle(env.ctx)
	require.NoError(t, err)

	ixn, err := env.client.CreateBuyTicketInstruction()
	require.NoError(t, err)
	return ixn
}

func TestSubmitInstructions(t *testing.T) {
	env := setup(t, DevCluster)
	ixn := bindBuyTicket(t, env)

	sig, err := env.client.SubmitInstructions(env.ctx, TransactionKindBuyTicket, ixn)
	require.NoError(t, err)

	submitted := env.sc.Submitted()
	require.Len(t, submitted, 1)

	txn := submitted[0]
	assert.Equal(t, sig, txn.Signatures[0])
	assert.Equal(t, env.wallet.PublicKey(), txn.Message.Accounts[0])
	require.Len(t, txn.Message.Instructions, 1)
	assert.True(t, ed25519.Verify(env.wallet.PublicKey(), txn.Message.Marshal(), sig[:]))

	assert.Equal(t, 1, env.sc.CallCount("GetLatestBlockhash"))
	assert.Equal(t, 1, env.sc.CallCount("GetSignatureStatus"))
}

func TestSubmitInstructions_ComputeBudget(t *testing.T) {
	env := setup(t, DevCluster)
	ixn := bindBuyTicket(t, env)

	_, err := env.client.SubmitInstructions(env.ctx, TransactionKindEndRaffle, ixn)
	require.NoError(t, err)

	submitted := env.sc.Submitted()
	require.Len(t, submitted, 1)

	txn := submitted[0]
	require.Len(t, txn.Message.Instructions, 2)

	expected := computebudget.SetComputeUnitLimit(defaultSellComputeUnitLimit)
	budget := txn.Message.Instructions[0]
	assert.Equal(t, expected.Program, txn.Message.Accounts[budget.ProgramIndex])
	assert.Equal(t, expected.Data, budget.Data)
}

func TestSubmitInstructions_PriorityFee(t *testing.T) {
	env := setup(t, DevCluster)
	ixn := bindBuyTicket(t, env)

	client, err := NewClient(
		DevCluster,
		WithSolanaClient(env.sc),
		WithWallet(env.wallet),
		WithConfigProvider(withManualTestOverrides(&testOverrides{computeUnitPrice: 5000})),
	)
	require.NoError(t, err)

	_, err = client.SubmitInstructions(env.ctx, TransactionKindBuyTicket, ixn)
	require.NoError(t, err)

	submitted := env.sc.Submitted()
	require.Len(t, submitted, 1)

	txn := submitted[0]
	require.Len(t, txn.Message.Instructions, 2)

	price, err := computebudget.ParseSetComputeUnitPriceIxnData(txn.Message.Instructions[0].Data)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, price)
}

func TestSubmitInstructions_Errors(t *testing.T) {
	env := setup(t, DevCluster)
	ixn := bindBuyTicket(t, env)

	_, err := env.client.SubmitInstructions(env.ctx, TransactionKindBuyTicket)
	testutil.AssertSolanaTxError(t, err, apierror.FailedToGenerateIx)

	env.sc.SetSubmitError(solana.NewInstructionTransactionError(0, solana.CustomError(madraffle.ErrNotActive)))
	_, err = env.client.SubmitInstructions(env.ctx, TransactionKindBuyTicket, ixn)
	testutil.AssertSolanaTxError(t, err, apierror.FailedToConfirm)

	programErr, ok := madraffle.GetError(err)
	require.True(t, ok)
	assert.Equal(t, madraffle.ErrNotActive, programErr)

	// Nothing is submitted without instructions, and a failed submit is
	// never retried
	assert.Equal(t, 1, env.sc.CallCount("SubmitTransaction"))
	assert.Empty(t, env.sc.Submitted())
}

func TestSubmitInstructions_FailedOnChain(t *testing.T) {
	env := setup(t, DevCluster)
	ixn := bindBuyTicket(t, env)

	env.sc.SetSignatureError(solana.NewTransactionError(solana.TransactionErrorInsufficientFundsForFee))

	sig, err := env.client.SubmitInstructions(env.ctx, TransactionKindBuyTicket, ixn)
	testutil.AssertSolanaTxError(t, err, apierror.FailedToConfirm)
	assert.NotEqual(t, solana.Signature{}, sig)
	assert.Equal(t, 1, env.sc.CallCount("SubmitTransaction"))
}

func TestSubmitInstructions_WalletRejected(t *testing.T) {
	env := setup(t, DevCluster)
	ixn := bindBuyTicket(t, env)

	client, err := NewClient(
		DevCluster,
		WithSolanaClient(env.sc),
		WithWallet(&rejectingWallet{pub: env.wallet.PublicKey()}),
		WithConfigProvider(withManualTestOverrides(&testOverrides{})),
	)
	require.NoError(t, err)

	_, err = client.SubmitInstructions(env.ctx, TransactionKindBuyTicket, ixn)
	testutil.AssertSolanaTxError(t, err, apierror.FailedToGenerateIx)
	assert.True(t, apierror.IsBenign(err))
	assert.Equal(t, 0, env.sc.CallCount("SubmitTransaction"))
}

func TestTransactionKind_String(t *testing.T) {
	assert.Equal(t, "buy_ticket", TransactionKindBuyTicket.String())
	assert.Equal(t, "end_raffle", TransactionKindEndRaffle.String())
	assert.Equal(t, "unknown", TransactionKindUnknown.String())
	assert.Equal(t, "unknown", TransactionKind(100).String())
}
