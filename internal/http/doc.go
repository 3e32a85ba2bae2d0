// Package http provides HTTP handlers and routing for the extraction REST API.
//
// This package implements all HTTP endpoints using the Gin framework,
// including health checks, event extraction, calendar link generation,
// service execution and user settings.
//
// Endpoints:
//   - Health: / and /health
//   - Extraction: /extract, /extract/last
//   - Calendar: /calendar/link
//   - Services: /services, /services/discover, /services/execute
//   - Settings: /settings
//
// Features:
//   - JSON request/response handling
//   - Proper HTTP status codes
//   - Error response formatting
//   - Extraction metrics recording
//
// Example Usage:
//
//	handlers := http.NewHandlers(engine, formatter, fetcher, registry, cache, settings, metrics)
//	router.GET("/health", handlers.Health)
//	router.POST("/extract", handlers.Extract)
package http
