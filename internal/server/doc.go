// Package server wires configuration, logging, metrics, providers and
// routes into a runnable HTTP server with graceful shutdown.
package server
