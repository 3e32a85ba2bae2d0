// Package types defines the shared data contracts: the canonical Event
// record produced by extraction, the service/tool definitions used by the
// provider registry, and the request/response shapes of the HTTP and
// WebSocket boundaries.
package types
