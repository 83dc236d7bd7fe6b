// Package bridge delivers image locators from the host environment to the
// pipeline.
//
// A trigger is a single line of text naming an image locator. All bridge
// implementations feed the same trigger channel, giving the pipeline exactly
// one logical delivery channel regardless of transport. (The system this
// replaces listened on two event targets for the same message and ran the
// pipeline twice on duplicate delivery; collapsing to one channel removes
// that hazard at the source.)
//
// Two transports are provided: LineBridge reads newline-delimited locators
// from an io.Reader (stdin in production), and SocketBridge accepts
// WebSocket text messages.
package bridge
