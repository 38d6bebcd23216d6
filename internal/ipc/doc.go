// Package ipc is the client for the receiver daemon's control socket.
//
// It composes the transport and the stanza codec into one method per
// documented daemon operation, mapping raw stanzas into typed records.
// Records are snapshots: nothing is cached between calls, so every query
// reflects fresh daemon state.
//
// The client adds no retry policy. Whether an operation is safe to repeat is
// the caller's call; status queries are idempotent, control operations may
// not be.
package ipc
