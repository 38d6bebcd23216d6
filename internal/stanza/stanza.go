package stanza

import (
	"errors"
	"fmt"
	"strings"
)

// Terminator ends every line on the wire, in both directions.
const Terminator = "\n"

// EndMarker is the line the daemon sends after the final stanza of a
// response. A response with no stanzas is just the end marker.
const EndMarker = "."

var (
	// ErrMalformed marks response bytes that violate the stanza grammar.
	ErrMalformed = errors.New("malformed response")

	// ErrInvalidCommand marks a command whose name or arguments cannot be
	// serialized as a single wire line.
	ErrInvalidCommand = errors.New("invalid command")
)

// Field is one key/value pair within a stanza. Values are raw strings;
// coercion to typed record fields happens in the mapper.
type Field struct {
	Key   string
	Value string
}

// Stanza is an ordered block of fields with unique keys.
type Stanza []Field

// Get returns the value for key and whether the key is present.
func (s Stanza) Get(key string) (string, bool) {
	for _, f := range s {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Command is a request to the daemon: a name plus optional arguments,
// serialized to a single line.
type Command struct {
	Name string
	Args []string
}

// Encode serializes the command to its wire line, including the terminator.
// Names and arguments are emitted verbatim; the protocol has no quoting, so
// tokens containing separators or line breaks are rejected before any I/O.
func (c Command) Encode() ([]byte, error) {
	if err := validToken("command name", c.Name); err != nil {
		return nil, err
	}
	for i, arg := range c.Args {
		if err := validToken(fmt.Sprintf("argument %d", i+1), arg); err != nil {
			return nil, err
		}
	}
	line := c.Name
	if len(c.Args) > 0 {
		line += " " + strings.Join(c.Args, " ")
	}
	return []byte(line + Terminator), nil
}

func validToken(what, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidCommand, what)
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("%w: %s %q contains separator or line break", ErrInvalidCommand, what, token)
	}
	return nil
}
