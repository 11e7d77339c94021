package raffle

import (
	"crypto/ed25519"
	"strings"

	"github.com/pkg/errors"

	"github.com/code-payments/mad-raffle/pkg/solana"
	"github.com/code-payments/mad-raffle/pkg/solana/madraffle"
)

var ErrUnknownCluster = errors.New("unknown cluster")

// Cluster is the complete set of protocol constants for one deployment of the
// raffle program. Values must match the deployed program exactly.
type Cluster struct {
	Name        string
	Environment solana.Environment

	ProgramId  ed25519.PublicKey
	Collection ed25519.PublicKey

	// RequireVerifiedCollection additionally requires the collection to be
	// verified on an NFT's metadata before it's offered for sale.
	RequireVerifiedCollection bool

	Authority ed25519.PublicKey
	FeeVault  ed25519.PublicKey
	PriceFeed ed25519.PublicKey
}

var (
	DevCluster = Cluster{
		Name:        "dev",
		Environment: solana.EnvironmentDev,

		ProgramId:  madraffle.DEVNET_PROGRAM_ID,
		Collection: solana.MustPublicKeyFromBase58("CLxN2mQsewGLsTKw3gML1AWFQjrWpG6WgLYTLX9BdhRp"),

		Authority: solana.MustPublicKeyFromBase58("AuthtWB95Cf3KaHh2gTsQLfKNtsGMgFg9BxgqbHjeLVy"),
		FeeVault:  solana.MustPublicKeyFromBase58("VLTJe32UcmbUpeKwsgp5734hWY6jhXnw7Nh7kvY72T6"),
		PriceFeed: solana.MustPublicKeyFromBase58("J83w4HKfqxwcq3BEMMkPFSppX3gqekLyLJBexebFVkix"),
	}

	ProdCluster = Cluster{
		Name:        "prod",
		Environment: solana.EnvironmentProd,

		ProgramId:                 madraffle.MAINNET_PROGRAM_ID,
		Collection:                solana.MustPublicKeyFromBase58("J1S9H3QjnRtBbbuD4HjPV6RpRhwuk4zKbxsnCHuTgh9w"),
		RequireVerifiedCollection: true,

		Authority: solana.MustPublicKeyFromBase58("AUTHtStYmZz7G8KQz6R6FmussLgPrybNhHx4EZzQwFBF"),
		FeeVault:  solana.MustPublicKeyFromBase58("68zZq8P3An1z98askGjUeUPijnaHpvnYcZNVeiM2pTrz"),
		PriceFeed: solana.MustPublicKeyFromBase58("H6ARHf6YXhGYeQfUzQNGk6rDNnLBQKrenN712K4AQJEG"),
	}
)

// ClusterFromName selects a cluster by name. There is no default.
func ClusterFromName(name string) (Cluster, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dev", "devnet":
		return DevCluster, nil
	case "prod", "mainnet":
		return ProdCluster, nil
	}
	return Cluster{}, errors.Wrapf(ErrUnknownCluster, "cluster %q", name)
}

func (c Cluster) validate() error {
	for name, key := range map[string]ed25519.PublicKey{
		"program id": c.ProgramId,
		"collection": c.Collection,
		"authority":  c.Authority,
		"fee vault":  c.FeeVault,
		"price feed": c.PriceFeed,
	} {
		if len(key) != ed25519.PublicKeySize {
			return errors.Errorf("cluster %s is missing its %s", c.Name, name)
		}
	}
	return nil
}
