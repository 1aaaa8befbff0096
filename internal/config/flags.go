package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key anti-forgery token signing key
//	-token-issuer anti-forgery token issuer name
//	-session-ttl session lifetime (e.g., "720h")
//	-trial-window trial window length (e.g., "72h")
//	-starter-product starter catalog product code
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-login-limit login attempts allowed per address per window
//	-login-window login rate-limit window (e.g., "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var sessionTTL time.Duration
	var trialWindow time.Duration
	var starterProduct string
	var requestTimeout time.Duration
	var loginLimit int
	var loginWindow time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Anti-forgery token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Anti-forgery token issuer")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 720h)")
	flag.DurationVar(&trialWindow, "trial-window", 0, "Trial window length (e.g., 72h)")
	flag.StringVar(&starterProduct, "starter-product", "", "Starter catalog product code")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&loginLimit, "login-limit", 0, "Login attempts allowed per address per window")
	flag.DurationVar(&loginWindow, "login-window", 0, "Login rate-limit window (e.g., 1m)")

	flag.Parse()

	return &StructuredConfig{
		Gate: Gate{
			TrialWindow: trialWindow,
		},
		Session: Session{
			TTL:          sessionTTL,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Catalog: Catalog{
			StarterProductCode: starterProduct,
		},
		RateLimit: RateLimit{
			LoginLimit:  loginLimit,
			LoginWindow: loginWindow,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string so that
// higher-priority sources are not shadowed during merging.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
