// Package main is the entry point for the EventScribe extraction backend.
//
// The server exposes heuristic event extraction, calendar deep-link
// generation and a WebSocket messaging boundary to browser clients.
//
// Architecture:
//
//	Browser client → Go backend → extraction engine
//	                           → calendar link formatter
//
// The server provides:
//   - REST API for extraction and calendar links
//   - WebSocket messaging with timeout-and-degrade extraction
//   - Service provider registry
//   - User settings persistence and a last-extraction cache
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
