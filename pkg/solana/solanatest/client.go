// Package solanatest provides an in-memory solana.Client for tests.
package solanatest

import (
	"crypto/ed25519"
	"crypto/sha256"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/code-payments/mad-raffle/pkg/solana"
)

// Approximates the cluster's rent-exempt minimum: (128 + size) * 6960.
const (
	accountStorageOverhead = 128
	lamportsPerByte        = 6960
)

// Client is a solana.Client backed by in-memory account state. Every method
// is safe for concurrent use.
type Client struct {
	mu sync.Mutex

	accounts      map[string]solana.AccountInfo
	tokenAccounts map[string][]solana.KeyedAccountInfo
	rent          map[uint64]uint64
	calls         map[string]int

	blockhash solana.Blockhash
	submitted []solana.Transaction

	submitErr    error
	signatureErr *solana.TransactionError
	accountErr   map[string]error
}

var _ solana.Client = (*Client)(nil)

func NewClient() *Client {
	return &Client{
		accounts:      make(map[string]solana.AccountInfo),
		tokenAccounts: make(map[string][]solana.KeyedAccountInfo),
		rent:          make(map[uint64]uint64),
		calls:         make(map[string]int),
		accountErr:    make(map[string]error),
		blockhash:     sha256.Sum256([]byte("blockhash")),
	}
}

// SetAccount stores account state at address.
func (c *Client) SetAccount(address ed25519.PublicKey, info solana.AccountInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts[base58.Encode(address)] = info
}

// DeleteAccount removes the account at address.
func (c *Client) DeleteAccount(address ed25519.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.accounts, base58.Encode(address))
}

// SetAccountError makes reads of address fail with err.
func (c *Client) SetAccountError(address ed25519.PublicKey, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accountErr[base58.Encode(address)] = err
}

// AddTokenAccount registers a token account under owner.
func (c *Client) AddTokenAccount(owner, address ed25519.PublicKey, info solana.AccountInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := base58.Encode(owner)
	c.tokenAccounts[key] = append(c.tokenAccounts[key], solana.KeyedAccountInfo{PublicKey: address, Account: info})
	c.accounts[base58.Encode(address)] = info
}

// SetRent overrides the rent-exempt minimum for an account size.
func (c *Client) SetRent(size, lamports uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rent[size] = lamports
}

// SetSubmitError makes SubmitTransaction fail with err.
func (c *Client) SetSubmitError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitErr = err
}

// SetSignatureError makes every submitted transaction fail on chain.
func (c *Client) SetSignatureError(err *solana.TransactionError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.signatureErr = err
}

// Submitted returns every transaction passed to SubmitTransaction.
func (c *Client) Submitted() []solana.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]solana.Transaction(nil), c.submitted...)
}

// CallCount returns how many times the named method was invoked.
func (c *Client) CallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls[method]
}

func (c *Client) GetAccountInfo(address ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetAccountInfo"]++
	return c.getAccount(address)
}

func (c *Client) GetMultipleAccounts(addresses []ed25519.PublicKey, _ solana.Commitment) ([]*solana.AccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetMultipleAccounts"]++

	infos := make([]*solana.AccountInfo, len(addresses))
	for i, address := range addresses {
		info, err := c.getAccount(address)
		if err == solana.ErrNoAccountInfo {
			continue
		} else if err != nil {
			return nil, err
		}
		infos[i] = &info
	}
	return infos, nil
}

func (c *Client) GetBalance(address ed25519.PublicKey) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetBalance"]++

	info, err := c.getAccount(address)
	if err == solana.ErrNoAccountInfo {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return info.Lamports, nil
}

func (c *Client) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetMinimumBalanceForRentExemption"]++

	if lamports, ok := c.rent[size]; ok {
		return lamports, nil
	}
	return (accountStorageOverhead + size) * lamportsPerByte, nil
}

func (c *Client) GetLatestBlockhash() (solana.Blockhash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetLatestBlockhash"]++
	return c.blockhash, nil
}

func (c *Client) GetSignatureStatus(sig solana.Signature, _ solana.Commitment) (*solana.SignatureStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetSignatureStatus"]++

	status := &solana.SignatureStatus{ConfirmationStatus: "confirmed", ErrorResult: c.signatureErr}
	if c.signatureErr != nil {
		return status, c.signatureErr
	}
	return status, nil
}

func (c *Client) GetSignatureStatuses(sigs []solana.Signature) ([]*solana.SignatureStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetSignatureStatuses"]++

	statuses := make([]*solana.SignatureStatus, len(sigs))
	for i := range sigs {
		statuses[i] = &solana.SignatureStatus{ConfirmationStatus: "confirmed", ErrorResult: c.signatureErr}
	}
	return statuses, nil
}

func (c *Client) GetTokenAccountsByOwner(owner, _ ed25519.PublicKey) ([]solana.KeyedAccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["GetTokenAccountsByOwner"]++
	return append([]solana.KeyedAccountInfo(nil), c.tokenAccounts[base58.Encode(owner)]...), nil
}

func (c *Client) RequestAirdrop(address ed25519.PublicKey, lamports uint64, _ solana.Commitment) (solana.Signature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["RequestAirdrop"]++

	key := base58.Encode(address)
	info := c.accounts[key]
	info.Lamports += lamports
	c.accounts[key] = info

	var sig solana.Signature
	copy(sig[:], address)
	return sig, nil
}

func (c *Client) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls["SubmitTransaction"]++

	var sig solana.Signature
	if len(txn.Signatures) > 0 {
		sig = txn.Signatures[0]
	}
	if c.submitErr != nil {
		return sig, c.submitErr
	}

	c.submitted = append(c.submitted, txn)
	return sig, nil
}

func (c *Client) getAccount(address ed25519.PublicKey) (solana.AccountInfo, error) {
	key := base58.Encode(address)
	if err, ok := c.accountErr[key]; ok {
		return solana.AccountInfo{}, err
	}

	info, ok := c.accounts[key]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}
