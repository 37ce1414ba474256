package settings

import (
	"fmt"
	"time"

	"github.com/de-tools/policy-atlas/pkg/services/exemption"
	"github.com/spf13/viper"
)

// Settings are the tunable knobs of the exemption engine. Everything has a
// working default; a settings file only overrides.
type Settings struct {
	BatchSize         int           `mapstructure:"batch_size"`
	InterBatchDelay   time.Duration `mapstructure:"inter_batch_delay"`
	InterCallDelay    time.Duration `mapstructure:"inter_call_delay"`
	QuotaHardLimit    int           `mapstructure:"quota_hard_limit"`
	QuotaSafetyBuffer int           `mapstructure:"quota_safety_threshold"`
}

func Default() Settings {
	batch := exemption.DefaultBatchConfig()
	guard := exemption.DefaultGuardSettings()
	return Settings{
		BatchSize:         batch.BatchSize,
		InterBatchDelay:   batch.InterBatchDelay,
		InterCallDelay:    batch.InterCallDelay,
		QuotaHardLimit:    guard.HardLimit,
		QuotaSafetyBuffer: guard.SafetyThreshold,
	}
}

// Load reads settings from the given file. An empty path returns defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	defaults := Default()
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("inter_batch_delay", defaults.InterBatchDelay)
	v.SetDefault("inter_call_delay", defaults.InterCallDelay)
	v.SetDefault("quota_hard_limit", defaults.QuotaHardLimit)
	v.SetDefault("quota_safety_threshold", defaults.QuotaSafetyBuffer)

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

// BatchConfig maps settings onto the creator's batch configuration.
func (s Settings) BatchConfig() exemption.BatchConfig {
	cfg := exemption.DefaultBatchConfig()
	cfg.BatchSize = s.BatchSize
	cfg.InterBatchDelay = s.InterBatchDelay
	cfg.InterCallDelay = s.InterCallDelay
	return cfg
}

// GuardSettings maps settings onto the quota guard.
func (s Settings) GuardSettings() exemption.GuardSettings {
	return exemption.GuardSettings{
		HardLimit:       s.QuotaHardLimit,
		SafetyThreshold: s.QuotaSafetyBuffer,
	}
}
