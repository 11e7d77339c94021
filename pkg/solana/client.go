package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/code-payments/mad-raffle/pkg/retry"
	"github.com/code-payments/mad-raffle/pkg/retry/backoff"
)

const (
	ticksPerSec  = 160
	ticksPerSlot = 64
	slotsPerSec  = ticksPerSec / ticksPerSlot

	// PollRate is the rate at which signature statuses are polled.
	PollRate = (time.Second / slotsPerSec) / 2

	// ~2x the slot rate for ~32 slots
	sigStatusPollLimit = 2 * 32

	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005

	invalidParamCode = -32602
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

// CommitmentFromString maps a commitment name to its Commitment. Unknown
// names fall back to confirmed.
func CommitmentFromString(name string) Commitment {
	switch name {
	case confirmationStatusProcessed:
		return CommitmentProcessed
	case confirmationStatusFinalized:
		return CommitmentFinalized
	default:
		return CommitmentConfirmed
	}
}

var (
	ErrNoAccountInfo     = errors.New("no account info")
	ErrSignatureNotFound = errors.New("signature not found")
	ErrNoBalance         = errors.New("no balance")
)

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// KeyedAccountInfo is an AccountInfo along with its address.
type KeyedAccountInfo struct {
	PublicKey ed25519.PublicKey
	Account   AccountInfo
}

type SignatureStatus struct {
	Slot        uint64
	ErrorResult *TransactionError

	// Confirmations will be nil if the transaction has been rooted.
	Confirmations      *int
	ConfirmationStatus string
}

func (s SignatureStatus) Confirmed() bool {
	if s.Finalized() {
		return true
	}
	if s.ConfirmationStatus == confirmationStatusConfirmed {
		return true
	}
	return *s.Confirmations >= 1
}

func (s SignatureStatus) Finalized() bool {
	return s.Confirmations == nil || s.ConfirmationStatus == confirmationStatusFinalized
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	GetMultipleAccounts([]ed25519.PublicKey, Commitment) ([]*AccountInfo, error)
	GetBalance(ed25519.PublicKey) (uint64, error)
	GetMinimumBalanceForRentExemption(size uint64) (lamports uint64, err error)
	GetLatestBlockhash() (Blockhash, error)
	GetSignatureStatus(Signature, Commitment) (*SignatureStatus, error)
	GetSignatureStatuses([]Signature) ([]*SignatureStatus, error)
	GetTokenAccountsByOwner(owner, program ed25519.PublicKey) ([]KeyedAccountInfo, error)
	RequestAirdrop(ed25519.PublicKey, uint64, Commitment) (Signature, error)
	SubmitTransaction(Transaction, Commitment) (Signature, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type rpcAccount struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
}

func (a *rpcAccount) toAccountInfo() (info AccountInfo, err error) {
	info.Owner, err = base58.Decode(a.Owner)
	if err != nil {
		return info, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(a.Data) == 0 {
		return info, errors.New("missing account data")
	}
	info.Data, err = base64.StdEncoding.DecodeString(a.Data[0])
	if err != nil {
		return info, errors.Wrap(err, "invalid base64 encoded data")
	}

	info.Lamports = a.Lamports
	info.Executable = a.Executable
	return info, nil
}

type accountConfig struct {
	Commitment string `json:"commitment"`
	Encoding   string `json:"encoding"`
}

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier

	blockMu   sync.RWMutex
	blockhash Blockhash
	lastWrite time.Time
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}
		return c.handleRpcError(method, err)
	})
	return err
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == rpcNodeUnhealthyCode {
		return errServiceError
	}
	return err
}

func (c *client) GetMinimumBalanceForRentExemption(dataSize uint64) (lamports uint64, err error) {
	if err := c.call(&lamports, "getMinimumBalanceForRentExemption", dataSize); err != nil {
		return 0, errors.Wrapf(err, "getMinimumBalanceForRentExemption() failed to send request")
	}
	return lamports, nil
}

func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	// Cached for a randomized ~2s window so concurrent submitters don't all
	// refresh at once.
	window := time.Duration(float64(2*time.Second) * (0.8 + rand.Float64()))

	c.blockMu.RLock()
	if time.Since(c.lastWrite) < window {
		hash = c.blockhash
	}
	c.blockMu.RUnlock()

	if hash != (Blockhash{}) {
		return hash, nil
	}

	var resp struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getLatestBlockhash", CommitmentConfirmed); err != nil {
		return hash, errors.Wrapf(err, "getLatestBlockhash() failed to send request")
	}

	hashBytes, err := base58.Decode(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid base58 encoded hash in response")
	}
	copy(hash[:], hashBytes)

	c.blockMu.Lock()
	c.blockhash = hash
	c.lastWrite = time.Now()
	c.blockMu.Unlock()

	return hash, nil
}

func (c *client) GetBalance(account ed25519.PublicKey) (uint64, error) {
	var resp struct {
		Value *uint64 `json:"value"`
	}
	if err := c.call(&resp, "getBalance", base58.Encode(account), CommitmentConfirmed); err != nil {
		if rpcErr, ok := err.(*jsonrpc.RPCError); ok && rpcErr.Code == invalidParamCode {
			return 0, ErrNoBalance
		}
		return 0, errors.Wrapf(err, "getBalance() failed to send request")
	}

	if resp.Value == nil {
		return 0, errors.New("invalid value in response")
	}
	return *resp.Value, nil
}

func (c *client) SubmitTransaction(txn Transaction, commitment Commitment) (Signature, error) {
	sig := txn.Signatures[0]

	config := struct {
		SkipPreflight       bool   `json:"skipPreflight"`
		PreflightCommitment string `json:"preflightCommitment"`
		Encoding            string `json:"encoding"`
	}{
		PreflightCommitment: commitment.Commitment,
		Encoding:            "base64",
	}

	var sigStr string
	err := c.call(&sigStr, "sendTransaction", base64.StdEncoding.EncodeToString(txn.Marshal()), config)
	if err == nil {
		return sig, nil
	}

	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return sig, errors.Wrapf(err, "sendTransaction() failed to send request")
	}

	txResult, parseErr := ParseRPCError(rpcErr)
	if parseErr != nil || txResult == nil {
		return sig, rpcErr
	}

	c.log.WithFields(logrus.Fields{
		"signature": sig.String(),
		"error":     txResult.Error(),
	}).Debug("transaction rejected during preflight")

	return sig, txResult
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	var resp struct {
		Value *rpcAccount `json:"value"`
	}

	config := accountConfig{Commitment: commitment.Commitment, Encoding: "base64"}
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), config); err != nil {
		return AccountInfo{}, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return AccountInfo{}, ErrNoAccountInfo
	}

	return resp.Value.toAccountInfo()
}

// GetMultipleAccounts returns account infos in request order. Missing
// accounts are nil entries.
func (c *client) GetMultipleAccounts(accounts []ed25519.PublicKey, commitment Commitment) ([]*AccountInfo, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	encoded := make([]string, len(accounts))
	for i, account := range accounts {
		encoded[i] = base58.Encode(account)
	}

	var resp struct {
		Value []*rpcAccount `json:"value"`
	}

	config := accountConfig{Commitment: commitment.Commitment, Encoding: "base64"}
	if err := c.call(&resp, "getMultipleAccounts", encoded, config); err != nil {
		return nil, errors.Wrap(err, "getMultipleAccounts() failed to send request")
	}

	if len(resp.Value) != len(accounts) {
		return nil, errors.Errorf("expected %d accounts in response, got %d", len(accounts), len(resp.Value))
	}

	infos := make([]*AccountInfo, len(accounts))
	for i, value := range resp.Value {
		if value == nil {
			continue
		}

		info, err := value.toAccountInfo()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account %s", encoded[i])
		}
		infos[i] = &info
	}
	return infos, nil
}

// GetTokenAccountsByOwner returns every token account owned by owner under the
// given token program.
func (c *client) GetTokenAccountsByOwner(owner, program ed25519.PublicKey) ([]KeyedAccountInfo, error) {
	filter := struct {
		ProgramID string `json:"programId"`
	}{
		ProgramID: base58.Encode(program),
	}

	var resp struct {
		Value []struct {
			PubKey  string     `json:"pubkey"`
			Account rpcAccount `json:"account"`
		} `json:"value"`
	}

	config := accountConfig{Commitment: confirmationStatusConfirmed, Encoding: "base64"}
	if err := c.call(&resp, "getTokenAccountsByOwner", base58.Encode(owner), filter, config); err != nil {
		return nil, errors.Wrap(err, "getTokenAccountsByOwner() failed to send request")
	}

	accounts := make([]KeyedAccountInfo, len(resp.Value))
	for i, value := range resp.Value {
		key, err := base58.Decode(value.PubKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode token account public key")
		}

		info, err := value.Account.toAccountInfo()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid token account %s", value.PubKey)
		}

		accounts[i] = KeyedAccountInfo{PublicKey: key, Account: info}
	}
	return accounts, nil
}

func (c *client) RequestAirdrop(account ed25519.PublicKey, lamports uint64, commitment Commitment) (Signature, error) {
	var sigStr string
	if err := c.call(&sigStr, "requestAirdrop", base58.Encode(account), lamports, commitment); err != nil {
		return Signature{}, errors.Wrapf(err, "requestAirdrop() failed to send request")
	}

	return signatureFromBase58(sigStr)
}

// GetSignatureStatus polls until the signature reaches the requested
// commitment, fails on chain, or the poll limit is hit.
func (c *client) GetSignatureStatus(sig Signature, commitment Commitment) (*SignatureStatus, error) {
	var s *SignatureStatus
	errConfirmationsNotReached := errors.New("confirmations not reached")

	_, err := retry.Retry(
		func() error {
			statuses, err := c.GetSignatureStatuses([]Signature{sig})
			if err != nil {
				return err
			}

			s = statuses[0]
			if s == nil {
				return ErrSignatureNotFound
			}
			if s.ErrorResult != nil {
				return s.ErrorResult
			}

			switch commitment {
			case CommitmentProcessed:
				return nil
			case CommitmentConfirmed:
				if s.Confirmed() {
					return nil
				}
			case CommitmentFinalized:
				if s.Finalized() {
					return nil
				}
			}
			return errConfirmationsNotReached
		},
		retry.RetriableErrors(ErrSignatureNotFound, errConfirmationsNotReached),
		retry.Limit(sigStatusPollLimit),
		retry.Backoff(backoff.Constant(PollRate), PollRate),
	)

	return s, err
}

func (c *client) GetSignatureStatuses(sigs []Signature) ([]*SignatureStatus, error) {
	encoded := make([]string, len(sigs))
	for i := range sigs {
		encoded[i] = sigs[i].String()
	}

	req := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{
		SearchTransactionHistory: true,
	}

	var resp struct {
		Value []*struct {
			Slot               uint64          `json:"slot"`
			Confirmations      *int            `json:"confirmations"`
			ConfirmationStatus string          `json:"confirmationStatus"`
			Err                json.RawMessage `json:"err"`
		} `json:"value"`
	}
	if err := c.call(&resp, "getSignatureStatuses", encoded, req); err != nil {
		return nil, errors.Wrap(err, "getSignatureStatuses() failed to send request")
	}

	statuses := make([]*SignatureStatus, len(sigs))
	for i, v := range resp.Value {
		if v == nil || i >= len(statuses) {
			continue
		}

		statuses[i] = &SignatureStatus{
			Slot:               v.Slot,
			Confirmations:      v.Confirmations,
			ConfirmationStatus: v.ConfirmationStatus,
		}

		if len(v.Err) == 0 || bytes.Equal(v.Err, []byte("null")) {
			continue
		}

		var txError interface{}
		if err := json.NewDecoder(bytes.NewBuffer(v.Err)).Decode(&txError); err != nil {
			return nil, errors.Wrap(err, "failed to parse transaction result")
		}

		parsed, err := ParseTransactionError(txError)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse transaction result")
		}
		statuses[i].ErrorResult = parsed
	}

	return statuses, nil
}

func signatureFromBase58(value string) (Signature, error) {
	var sig Signature

	decoded, err := base58.Decode(value)
	if err != nil {
		return sig, errors.Wrap(err, "invalid signature in response")
	}
	if len(decoded) != len(sig) {
		return sig, errors.Errorf("invalid signature length: %d", len(decoded))
	}

	copy(sig[:], decoded)
	return sig, nil
}
