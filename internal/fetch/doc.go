// Package fetch downloads event pages over HTTP with retrying transport,
// size limits and HTML content-type validation.
package fetch
