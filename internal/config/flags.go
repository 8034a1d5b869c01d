package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-r remote notes server base URL (client)
//	-d database DSN (Postgres DSN on the server, SQLite path on the client)
//	-fallback degraded JSON file store path (client)
//	-login remote account login (client)
//	-password remote account password (client)
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-strategy conflict resolution strategy
//	-sync-interval background sync interval (e.g., "5m")
//	-sync-retention tombstone retention window (e.g., "720h")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var remoteAddress string
	var databaseDSN string
	var fallbackPath string
	var remoteLogin string
	var remotePassword string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var syncStrategy string
	var syncInterval time.Duration
	var syncRetention time.Duration

	flag.StringVar(&serverAddress, "a", "", "Server listen address host:port")
	flag.StringVar(&remoteAddress, "r", "", "Remote notes server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&fallbackPath, "fallback", "", "Fallback JSON store path")
	flag.StringVar(&remoteLogin, "login", "", "Remote account login")
	flag.StringVar(&remotePassword, "password", "", "Remote account password")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&syncStrategy, "sync-strategy", "", "Conflict resolution strategy")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.DurationVar(&syncRetention, "sync-retention", 0, "Tombstone retention window (e.g., 720h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB:       DB{DSN: databaseDSN},
			Fallback: Fallback{Path: fallbackPath},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
			Login:          remoteLogin,
			Password:       remotePassword,
		},
		Sync: Sync{
			Strategy:  syncStrategy,
			Interval:  syncInterval,
			Retention: syncRetention,
		},
		JSONFilePath: jsonConfigPath,
	}
}
