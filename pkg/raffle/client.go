package raffle

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/mad-raffle/pkg/raffle/data/history"
	"github.com/code-payments/mad-raffle/pkg/raffle/metadata"
	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/token"
)

const (
	metricsStructName = "raffle.client"

	transactionConfirmedEventName = "RaffleTransactionConfirmed"
)

var (
	// ErrNotReady is returned by every chain operation on a client that was
	// never bound to a Solana client.
	ErrNotReady = errors.New("raffle client is not ready")

	ErrNoCurrentRaffle = errors.New("no current raffle is bound")
	ErrPrizeNotSet     = errors.New("raffle prize is not set")
	ErrWinnerNotSet    = errors.New("raffle winner is not set")
)

// RandomKeySource supplies the fresh address passed to winner selection.
type RandomKeySource func() (ed25519.PublicKey, error)

type Option func(*Client)

// WithSolanaClient binds the client to a cluster connection
func WithSolanaClient(sc solana.Client) Option {
	return func(c *Client) {
		c.sc = sc
	}
}

// WithWallet sets the signer identity used for user operations
func WithWallet(wallet Wallet) Option {
	return func(c *Client) {
		c.wallet = wallet
	}
}

// WithHistoryStore sets where settled raffles are cached
func WithHistoryStore(store history.Store) Option {
	return func(c *Client) {
		c.history = store
	}
}

// WithMetadataFetcher sets how off-chain NFT metadata is loaded
func WithMetadataFetcher(fetcher metadata.Fetcher) Option {
	return func(c *Client) {
		c.metadata = fetcher
	}
}

// WithConfigProvider overrides the environment based configuration
func WithConfigProvider(configProvider ConfigProvider) Option {
	return func(c *Client) {
		c.conf = configProvider()
	}
}

// WithRandomKeySource overrides the random address source for winner
// selection
func WithRandomKeySource(source RandomKeySource) Option {
	return func(c *Client) {
		c.randomKey = source
	}
}

// Client is the raffle SDK. A client without a Solana client is unbound and
// never becomes ready; a new client must be created instead.
type Client struct {
	log     *logrus.Entry
	cluster Cluster
	conf    *conf

	sc       solana.Client
	tokens   *token.Client
	wallet   Wallet
	history  history.Store
	metadata metadata.Fetcher

	randomKey RandomKeySource

	currentMu sync.RWMutex
	current   *CurrentRaffle
}

func NewClient(cluster Cluster, opts ...Option) (*Client, error) {
	if err := cluster.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		log:       logrus.StandardLogger().WithField("type", "raffle/client").WithField("cluster", cluster.Name),
		cluster:   cluster,
		randomKey: generateRandomKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.conf == nil {
		c.conf = WithEnvConfigs()()
	}
	if c.sc != nil {
		c.tokens = token.NewClient(c.sc)
	}
	if c.metadata == nil {
		c.metadata = metadata.NewClient()
	}
	return c, nil
}

// IsReady returns whether the client is bound to a Solana client
func (c *Client) IsReady() bool {
	return c.sc != nil
}

func (c *Client) Cluster() Cluster {
	return c.cluster
}

// Wallet returns the configured wallet, if any
func (c *Client) Wallet() (Wallet, bool) {
	return c.wallet, c.wallet != nil
}

func (c *Client) commitment(ctx context.Context) solana.Commitment {
	return solana.CommitmentFromString(c.conf.confirmCommitment.Get(ctx))
}

func generateRandomKey() (ed25519.PublicKey, error) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	return pub, err
}
