// Package webhook exposes the Dispatcher over HTTP.
//
// The voice platform POSTs one JSON envelope per turn to /post and expects a
// JSON envelope back. This package only translates envelopes to dialog.Turn
// and dialog.Reply; it holds no dialog logic. Business failures never change
// the HTTP status: they arrive as reply text. Only a missing or malformed
// envelope is answered with 400.
package webhook
