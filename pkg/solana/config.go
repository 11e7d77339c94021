package solana

import "strings"

// Environment is the JSON-RPC endpoint of a Solana cluster
type Environment string

const (
	EnvironmentLocal Environment = "http://localhost:8899"
	EnvironmentDev   Environment = "https://api.devnet.solana.com"
	EnvironmentTest  Environment = "https://api.testnet.solana.com"
	EnvironmentProd  Environment = "https://api.mainnet-beta.solana.com"
)

var environmentsByName = map[string]Environment{
	"local":        EnvironmentLocal,
	"localnet":     EnvironmentLocal,
	"dev":          EnvironmentDev,
	"devnet":       EnvironmentDev,
	"test":         EnvironmentTest,
	"testnet":      EnvironmentTest,
	"prod":         EnvironmentProd,
	"mainnet":      EnvironmentProd,
	"mainnet-beta": EnvironmentProd,
}

// ResolveEnvironment maps a well known cluster name, such as "devnet", to its
// public endpoint. Anything else is treated as an endpoint URL.
func ResolveEnvironment(nameOrUrl string) Environment {
	value := strings.TrimSpace(nameOrUrl)
	if env, ok := environmentsByName[strings.ToLower(value)]; ok {
		return env
	}
	return Environment(value)
}
