package config

import "time"

// Default values applied as the lowest-priority configuration source.
// Sentinel defaults mirror the values the operations team has issued to
// customers since launch; override them per environment when rotating.
const (
	DefaultTrialSentinel      = "1101"
	DefaultReactivateSentinel = "3800"
	DefaultLockedSentinel     = "8300"
	DefaultPartnerSentinel    = "qwe1"

	DefaultTrialWindow = 72 * time.Hour
	DefaultSessionTTL  = 30 * 24 * time.Hour

	DefaultStarterProductCode = "SAMPLE-MED-001"

	DefaultLoginLimit  = 10
	DefaultLoginWindow = time.Minute

	DefaultHTTPAddress    = "0.0.0.0:8080"
	DefaultRequestTimeout = 30 * time.Second

	DefaultTokenIssuer = "cruise-companion"

	DefaultSessionCleanupInterval = time.Hour
	DefaultLimiterGCInterval      = 5 * time.Minute
)

// defaultConfig returns the built-in defaults as a configuration layer.
// The builder merges it last, so it only fills fields no other source set.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Gate: Gate{
			TrialSentinel:      DefaultTrialSentinel,
			ReactivateSentinel: DefaultReactivateSentinel,
			LockedSentinel:     DefaultLockedSentinel,
			PartnerSentinel:    DefaultPartnerSentinel,
			TrialWindow:        DefaultTrialWindow,
		},
		Session: Session{
			TTL:         DefaultSessionTTL,
			TokenIssuer: DefaultTokenIssuer,
		},
		Catalog: Catalog{
			StarterProductCode: DefaultStarterProductCode,
		},
		RateLimit: RateLimit{
			LoginLimit:  DefaultLoginLimit,
			LoginWindow: DefaultLoginWindow,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SessionCleanupInterval: DefaultSessionCleanupInterval,
			LimiterGCInterval:      DefaultLimiterGCInterval,
		},
	}
}
