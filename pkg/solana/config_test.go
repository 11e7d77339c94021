package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	for input, expected := range map[string]Environment{
		"devnet":               EnvironmentDev,
		"DEV":                  EnvironmentDev,
		" mainnet-beta ":       EnvironmentProd,
		"prod":                 EnvironmentProd,
		"testnet":              EnvironmentTest,
		"local":                EnvironmentLocal,
		"https://rpc.example":  "https://rpc.example",
		"http://10.0.0.1:8899": "http://10.0.0.1:8899",
	} {
		assert.Equal(t, expected, ResolveEnvironment(input), input)
	}
}
