package raffle

import (
	"github.com/code-payments/mad-raffle/pkg/config"
	"github.com/code-payments/mad-raffle/pkg/config/env"
	"github.com/code-payments/mad-raffle/pkg/config/memory"
	"github.com/code-payments/mad-raffle/pkg/config/wrapper"
)

const (
	envConfigPrefix = "RAFFLE_SDK_"

	// Fees must stay below 100%, so values of 10000 or more are rejected.
	FeeBasisPointsConfigEnvName = envConfigPrefix + "FEE_BASIS_POINTS"
	defaultFeeBasisPoints       = 420
	maxFeeBasisPoints           = basisPointsDenominator - 1

	// Size of a freshly created raffle account, whose rent the seller's
	// payout must leave behind for the successor raffle.
	ReferenceAccountSizeConfigEnvName = envConfigPrefix + "REFERENCE_ACCOUNT_SIZE"
	defaultReferenceAccountSize       = 138

	SellComputeUnitLimitConfigEnvName = envConfigPrefix + "SELL_COMPUTE_UNIT_LIMIT"
	defaultSellComputeUnitLimit       = 1_000_000

	// Priority fee in micro-lamports per compute unit. Zero leaves it unset.
	ComputeUnitPriceConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_PRICE"
	defaultComputeUnitPrice       = 0

	MetadataConcurrencyConfigEnvName = envConfigPrefix + "METADATA_CONCURRENCY"
	defaultMetadataConcurrency       = 8

	ConfirmCommitmentConfigEnvName = envConfigPrefix + "CONFIRM_COMMITMENT"
	defaultConfirmCommitment       = "confirmed"
)

type conf struct {
	feeBasisPoints       config.Uint64
	referenceAccountSize config.Uint64
	sellComputeUnitLimit config.Uint64
	computeUnitPrice     config.Uint64
	metadataConcurrency  config.Uint64
	confirmCommitment    config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			feeBasisPoints:       env.NewBoundedUint64Config(FeeBasisPointsConfigEnvName, defaultFeeBasisPoints, maxFeeBasisPoints),
			referenceAccountSize: env.NewUint64Config(ReferenceAccountSizeConfigEnvName, defaultReferenceAccountSize),
			sellComputeUnitLimit: env.NewUint64Config(SellComputeUnitLimitConfigEnvName, defaultSellComputeUnitLimit),
			computeUnitPrice:     env.NewUint64Config(ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
			metadataConcurrency:  env.NewUint64Config(MetadataConcurrencyConfigEnvName, defaultMetadataConcurrency),
			confirmCommitment:    env.NewStringConfig(ConfirmCommitmentConfigEnvName, defaultConfirmCommitment),
		}
	}
}

type testOverrides struct {
	feeBasisPoints       uint64
	referenceAccountSize uint64
	sellComputeUnitLimit uint64
	computeUnitPrice     uint64
	metadataConcurrency  uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			feeBasisPoints:       wrapper.NewBoundedUint64Config(memory.NewConfig(valueOrNil(overrides.feeBasisPoints)), defaultFeeBasisPoints, maxFeeBasisPoints),
			referenceAccountSize: wrapper.NewUint64Config(memory.NewConfig(valueOrNil(overrides.referenceAccountSize)), defaultReferenceAccountSize),
			sellComputeUnitLimit: wrapper.NewUint64Config(memory.NewConfig(valueOrNil(overrides.sellComputeUnitLimit)), defaultSellComputeUnitLimit),
			computeUnitPrice:     wrapper.NewUint64Config(memory.NewConfig(valueOrNil(overrides.computeUnitPrice)), defaultComputeUnitPrice),
			metadataConcurrency:  wrapper.NewUint64Config(memory.NewConfig(valueOrNil(overrides.metadataConcurrency)), defaultMetadataConcurrency),
			confirmCommitment:    wrapper.NewStringConfig(memory.NewConfig(defaultConfirmCommitment), defaultConfirmCommitment),
		}
	}
}

// valueOrNil leaves zero overrides unset so the default applies
func valueOrNil(value uint64) interface{} {
	if value == 0 {
		return nil
	}
	return value
}
