// Package providers implements the service providers registered with the
// registry: event extraction, calendar link generation, user settings and
// the ephemeral extraction-result cache.
package providers
