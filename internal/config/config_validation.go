// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Haneul Lab

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.TokenSignKey == "" {
		return ErrInvalidSessionConfigs
	}

	sentinels := map[string]struct{}{}
	for _, sentinel := range []string{
		cfg.Gate.TrialSentinel,
		cfg.Gate.ReactivateSentinel,
		cfg.Gate.LockedSentinel,
		cfg.Gate.PartnerSentinel,
	} {
		if sentinel == "" {
			return ErrInvalidGateConfigs
		}
		sentinels[sentinel] = struct{}{}
	}

	// Sentinels select mutually exclusive lifecycle actions; two equal
	// values would make classification ambiguous.
	if len(sentinels) != 4 {
		return ErrInvalidGateConfigs
	}

	if cfg.Gate.TrialWindow <= 0 {
		return ErrInvalidGateConfigs
	}

	if cfg.RateLimit.LoginLimit <= 0 || cfg.RateLimit.LoginWindow <= 0 {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}
