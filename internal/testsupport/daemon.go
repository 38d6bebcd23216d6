package testsupport

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"downlink/internal/stanza"
)

// Handler produces the response payload for one command. The payload excludes
// the end marker, which the daemon appends. Returning respond=false leaves
// the exchange hanging, which is how timeout behavior is exercised.
type Handler func(args []string) (payload string, respond bool)

// Daemon is a scripted in-process stand-in for the receiver daemon. It
// listens on a Unix socket, reads command lines, and answers each from the
// registered handler for the command name.
type Daemon struct {
	tb       testing.TB
	socket   string
	listener net.Listener
	done     chan struct{}

	mu       sync.Mutex
	handlers map[string]Handler
	commands []string
}

// StartDaemon listens on socket and serves until the test ends.
func StartDaemon(tb testing.TB, socket string) *Daemon {
	tb.Helper()
	listener, err := net.Listen("unix", socket)
	if err != nil {
		tb.Fatalf("listen on %s: %v", socket, err)
	}
	d := &Daemon{
		tb:       tb,
		socket:   socket,
		listener: listener,
		done:     make(chan struct{}),
		handlers: map[string]Handler{},
	}
	tb.Cleanup(func() {
		close(d.done)
		listener.Close()
	})
	go d.serve()
	return d
}

// Socket returns the daemon's socket path.
func (d *Daemon) Socket() string { return d.socket }

// Handle registers a handler for a command name.
func (d *Daemon) Handle(command string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[command] = h
}

// Respond registers a canned stanza response for a command.
func (d *Daemon) Respond(command string, stanzas ...stanza.Stanza) {
	payload := Render(stanzas...)
	d.Handle(command, func([]string) (string, bool) { return payload, true })
}

// RespondRaw registers a raw payload, which may deliberately violate the
// stanza grammar.
func (d *Daemon) RespondRaw(command, payload string) {
	d.Handle(command, func([]string) (string, bool) { return payload, true })
}

// Stall registers a handler that never answers, leaving the client to hit
// its response timeout.
func (d *Daemon) Stall(command string) {
	done := d.done
	d.Handle(command, func([]string) (string, bool) {
		<-done
		return "", false
	})
}

// Commands returns the command lines received so far, in order.
func (d *Daemon) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.commands...)
}

func (d *Daemon) serve() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		go d.handleConn(conn)
	}
}

func (d *Daemon) handleConn(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSuffix(line, "\n")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		d.mu.Lock()
		d.commands = append(d.commands, line)
		handler, ok := d.handlers[fields[0]]
		d.mu.Unlock()

		if !ok {
			payload := Render(Reject(fmt.Sprintf("unknown command %s", fields[0])))
			if _, err := conn.Write([]byte(payload + stanza.EndMarker + "\n")); err != nil {
				return
			}
			continue
		}
		payload, respond := handler(fields[1:])
		if !respond {
			continue
		}
		if _, err := conn.Write([]byte(payload + stanza.EndMarker + "\n")); err != nil {
			return
		}
	}
}

// Render serializes stanzas into a response payload, one blank line after
// each stanza, without the end marker.
func Render(stanzas ...stanza.Stanza) string {
	var b strings.Builder
	for _, st := range stanzas {
		for _, f := range st {
			b.WriteString(f.Key)
			b.WriteString(": ")
			b.WriteString(f.Value)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Ack is the daemon's positive control acknowledgement.
func Ack() stanza.Stanza {
	return stanza.Stanza{{Key: "status", Value: "ok"}}
}

// Reject is an error acknowledgement carrying a reason.
func Reject(reason string) stanza.Stanza {
	return stanza.Stanza{
		{Key: "status", Value: "error"},
		{Key: "reason", Value: reason},
	}
}

// NewTransfer fabricates a transfer stanza with a unique identifier, the way
// the daemon reports an in-progress download.
func NewTransfer(path string, size, received int64) stanza.Stanza {
	return stanza.Stanza{
		{Key: "id", Value: uuid.NewString()},
		{Key: "path", Value: path},
		{Key: "size", Value: fmt.Sprintf("%d", size)},
		{Key: "received", Value: fmt.Sprintf("%d", received)},
	}
}
