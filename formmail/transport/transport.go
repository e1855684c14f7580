// Package transport delivers composed messages.
//
// A Transport is dialed once per submission. Dialing verifies the relay
// configuration (connection, TLS handshake and authentication); the
// returned Session then sends exactly one message.
package transport

import (
	"fmt"

	"github.com/Pandentia/formmail/formmail"
)

// Transport opens sessions to a mail relay.
type Transport interface {
	Dial() (Session, error)
}

// Session sends messages over an open relay connection.
type Session interface {
	Send(msg *formmail.Message) error
	Close() error
}

// Kinds of transports that can be configured.
const (
	KindSMTP = "smtp"
	KindLog  = "log"
)

// Kinds lists the valid transport kinds.
var Kinds = []string{KindSMTP, KindLog}

// Send dials t and sends msg on a fresh session.
// Dial failures are returned as *DialError so callers can tell them apart.
func Send(t Transport, msg *formmail.Message) error {
	session, err := t.Dial()
	if err != nil {
		return &DialError{Err: err}
	}
	defer session.Close()

	if err := session.Send(msg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// DialError is returned when a transport cannot be opened.
type DialError struct {
	Err error
}

func (e *DialError) Error() string {
	return "dialing transport: " + e.Err.Error()
}

func (e *DialError) Unwrap() error {
	return e.Err
}

// Unavailable is a Transport that cannot be dialed, used when the relay
// configuration could not be loaded.
type Unavailable struct {
	Err error
}

// Dial always fails with u.Err.
func (u Unavailable) Dial() (Session, error) {
	return nil, u.Err
}
