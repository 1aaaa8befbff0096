package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON strings in
// time.ParseDuration notation (e.g. "72h", "30s").
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler for Duration.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// [Duration] fields so that operators can keep durations human-readable
// in configuration files.
type StructuredJSONConfig struct {
	Gate struct {
		TrialSentinel      string   `json:"trial_sentinel"`
		ReactivateSentinel string   `json:"reactivate_sentinel"`
		LockedSentinel     string   `json:"locked_sentinel"`
		PartnerSentinel    string   `json:"partner_sentinel"`
		TrialWindow        Duration `json:"trial_window"`
	} `json:"gate,omitempty"`

	Session struct {
		TTL          Duration `json:"ttl"`
		TokenSignKey string   `json:"token_sign_key"`
		TokenIssuer  string   `json:"token_issuer"`
	} `json:"session,omitempty"`

	Catalog struct {
		StarterProductCode string `json:"starter_product_code"`
	} `json:"catalog,omitempty"`

	RateLimit struct {
		LoginLimit  int      `json:"login_limit"`
		LoginWindow Duration `json:"login_window"`
	} `json:"rate_limit,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SessionCleanupInterval Duration `json:"session_cleanup_interval"`
		LimiterGCInterval      Duration `json:"limiter_gc_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Gate: Gate{
			TrialSentinel:      jsonCfg.Gate.TrialSentinel,
			ReactivateSentinel: jsonCfg.Gate.ReactivateSentinel,
			LockedSentinel:     jsonCfg.Gate.LockedSentinel,
			PartnerSentinel:    jsonCfg.Gate.PartnerSentinel,
			TrialWindow:        time.Duration(jsonCfg.Gate.TrialWindow),
		},
		Session: Session{
			TTL:          time.Duration(jsonCfg.Session.TTL),
			TokenSignKey: jsonCfg.Session.TokenSignKey,
			TokenIssuer:  jsonCfg.Session.TokenIssuer,
		},
		Catalog: Catalog{
			StarterProductCode: jsonCfg.Catalog.StarterProductCode,
		},
		RateLimit: RateLimit{
			LoginLimit:  jsonCfg.RateLimit.LoginLimit,
			LoginWindow: time.Duration(jsonCfg.RateLimit.LoginWindow),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			SessionCleanupInterval: time.Duration(jsonCfg.Workers.SessionCleanupInterval),
			LimiterGCInterval:      time.Duration(jsonCfg.Workers.LimiterGCInterval),
		},
	}

	return cfg, nil
}
