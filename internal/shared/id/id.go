// Package id provides prefixed ID generation for requests and cached
// extraction results. Prefixes keep logs readable (req_*, evt_*, cli_*).
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RequestID identifies an API or WebSocket request.
type RequestID string

// EventID identifies a cached extraction result.
type EventID string

// ClientID identifies a connected WebSocket client.
type ClientID string

const (
	requestPrefix = "req"
	eventPrefix   = "evt"
	clientPrefix  = "cli"
)

func generate(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

// NewRequestID generates a new request ID.
func NewRequestID() RequestID { return RequestID(generate(requestPrefix)) }

// NewEventID generates a new cached-event ID.
func NewEventID() EventID { return EventID(generate(eventPrefix)) }

// NewClientID generates a new client ID.
func NewClientID() ClientID { return ClientID(generate(clientPrefix)) }

func (id RequestID) String() string { return string(id) }
func (id EventID) String() string   { return string(id) }
func (id ClientID) String() string  { return string(id) }

// IsValid checks whether an ID carries a known prefix and a parseable UUID.
func IsValid(id string) bool {
	prefix, rest, found := strings.Cut(id, "_")
	if !found {
		return false
	}
	switch prefix {
	case requestPrefix, eventPrefix, clientPrefix:
	default:
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}
