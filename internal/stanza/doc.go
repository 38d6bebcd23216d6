// Package stanza implements the receiver daemon's wire format: single-line
// commands on the way out, blank-line separated blocks of key/value pairs on
// the way back.
//
// Encoding and decoding are pure functions of their inputs. The package knows
// nothing about sockets or about the meaning of individual keys; transport and
// record mapping live elsewhere.
package stanza
