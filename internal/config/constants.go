package config

import "time"

const (
	DBPingTimeout = 5 * time.Second

	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 60 * time.Second
	ServerRequestTimeout  = 120 * time.Second
	ServerShutdownTimeout = 10 * time.Second

	// RiotCallTimeout bounds each outbound call to the stats provider.
	RiotCallTimeout = 10 * time.Second

	// AccountRefreshTimeout bounds the full per-account refresh chain
	// (identity resolution, ranked entries, persistence).
	AccountRefreshTimeout = 30 * time.Second

	// RefreshConcurrency caps the number of accounts refreshed at once.
	RefreshConcurrency = 8

	IdentityCacheTTL = 6 * time.Hour
)
