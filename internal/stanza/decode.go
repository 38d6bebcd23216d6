package stanza

import (
	"fmt"
	"strings"
)

// Decode parses response payload bytes into an ordered sequence of stanzas.
// The payload is everything the daemon sent before the end marker; an empty
// payload decodes to an empty sequence. Decode never mutates its input.
func Decode(payload []byte) ([]Stanza, error) {
	stanzas := []Stanza{}
	var current Stanza
	seen := map[string]struct{}{}

	for _, line := range strings.Split(string(payload), Terminator) {
		if line == "" {
			if len(current) > 0 {
				stanzas = append(stanzas, current)
				current = nil
				seen = map[string]struct{}{}
			}
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %q has no key/value separator", ErrMalformed, line)
		}
		if key == "" {
			return nil, fmt.Errorf("%w: line %q has an empty key", ErrMalformed, line)
		}
		if strings.ContainsRune(key, '\r') || strings.ContainsRune(value, '\r') {
			return nil, fmt.Errorf("%w: line %q contains a stray carriage return", ErrMalformed, line)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q within one stanza", ErrMalformed, key)
		}
		seen[key] = struct{}{}
		current = append(current, Field{Key: key, Value: strings.TrimLeft(value, " \t")})
	}
	if len(current) > 0 {
		stanzas = append(stanzas, current)
	}
	return stanzas, nil
}
