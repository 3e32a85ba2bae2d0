// Package config provides 12-factor configuration management for the
// extraction backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Fetch: Page download limits and identification
//   - WS: WebSocket message timeout policy
//   - Settings: User preference persistence path
//   - Cache: Extraction-result cache TTL
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - FETCH_TIMEOUT, FETCH_MAX_BYTES, FETCH_USER_AGENT
//   - WS_REQUEST_TIMEOUT, SETTINGS_PATH, CACHE_TTL
package config
