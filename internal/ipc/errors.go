package ipc

import (
	"errors"
	"fmt"

	"downlink/internal/stanza"
	"downlink/internal/transport"
)

// Sentinel errors for classification with errors.Is. Transport and codec
// failures surface under the same identities the lower layers produce, so a
// caller holding only this package can still tell the cases apart.
var (
	// ErrConnection: the socket could not be opened, was dropped
	// mid-exchange, or was used after close.
	ErrConnection = transport.ErrConnection

	// ErrTimeout: no complete response within the configured window. The
	// connection has been closed by the time the caller sees this.
	ErrTimeout = transport.ErrTimeout

	// ErrMalformedResponse: the response bytes violate the stanza grammar
	// or the response shape does not match the command that was sent.
	ErrMalformedResponse = stanza.ErrMalformed

	// ErrInvalidArgument: caller-supplied parameters failed local
	// validation; nothing was sent.
	ErrInvalidArgument = stanza.ErrInvalidCommand

	// ErrDaemonRejected: the daemon answered a control command with an
	// error acknowledgement.
	ErrDaemonRejected = errors.New("daemon rejected command")
)

// MissingFieldError reports a stanza that is syntactically valid but lacks a
// field the expected record kind requires.
type MissingFieldError struct {
	Record string
	Field  string
	Key    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %s (protocol key %q)", e.Record, e.Field, e.Key)
}

// FieldTypeError reports a raw value that could not be coerced to the
// declared type of a record field.
type FieldTypeError struct {
	Record string
	Field  string
	Key    string
	Raw    string
	Err    error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: field %s (protocol key %q): cannot coerce %q: %v", e.Record, e.Field, e.Key, e.Raw, e.Err)
}

func (e *FieldTypeError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
