// Package transport maintains the socket connection to the receiver daemon.
//
// It moves raw bytes: encoded command lines out, response payloads (everything
// up to the end marker) back in. Transport failures and response timeouts are
// reported through distinct sentinel errors so callers can tell a dead socket
// from a slow daemon.
package transport
