package engine

import (
	"github.com/plasma-fi/presale-server/pkg/config"
	"github.com/plasma-fi/presale-server/pkg/config/env"
	"github.com/plasma-fi/presale-server/pkg/config/memory"
	"github.com/plasma-fi/presale-server/pkg/config/wrapper"

	splpresale "github.com/plasma-fi/presale-server/pkg/solana/presale"
)

const (
	envConfigPrefix = "PRESALE_ENGINE_"

	// LockDurationConfigEnvName configures the purchase lock duration in seconds
	LockDurationConfigEnvName = envConfigPrefix + "LOCK_DURATION"
	defaultLockDuration       = splpresale.DefaultLockDuration
)

type conf struct {
	lockDuration config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			lockDuration: env.NewUint64Config(LockDurationConfigEnvName, defaultLockDuration),
		}
	}
}

type testOverrides struct {
	lockDuration uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			lockDuration: wrapper.NewUint64Config(memory.NewConfig(overrides.lockDuration), defaultLockDuration),
		}
	}
}
