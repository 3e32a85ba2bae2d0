// Package ws provides the WebSocket messaging boundary for extraction
// clients.
//
// Each message carries an action discriminator and a JSON payload shaped
// like the canonical event record. Extraction-bearing actions run under a
// fixed timeout; on expiry the handler answers with whatever partial data
// the raw selection provides instead of blocking the client.
//
// Actions (Client → Server):
//   - ping: Keep-alive ping
//   - getSelection / getSelectedText: Extract from selected text only
//   - processSelectedText: Full extraction over page HTML plus selection
//   - addToCalendar: Render an event as a calendar deep link
//
// Responses echo the action and carry success, the event record, a deep
// link URL, or an error message.
//
// Example Usage:
//
//	handler := ws.NewHandler(engine, formatter, cache, metrics, logger, time.Second)
//	router.GET("/stream", handler.HandleConnection)
package ws
