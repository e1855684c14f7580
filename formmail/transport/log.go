package transport

import (
	"github.com/Pandentia/formmail/formmail"
	"github.com/rs/zerolog"
)

// Log writes messages to a logger instead of sending them.
// It is meant for local development.
type Log struct {
	Logger zerolog.Logger
}

// Dial always succeeds.
func (l *Log) Dial() (Session, error) {
	return l, nil
}

// Send logs the message.
func (l *Log) Send(msg *formmail.Message) error {
	l.Logger.Info().
		Str("module", "transport.log").
		Str("from", msg.From()).
		Str("to", msg.To).
		Str("reply_to", msg.ReplyTo).
		Str("subject", msg.Subject).
		Str("text", msg.Text).
		Msg("Message not sent, logged instead.")
	return nil
}

// Close does nothing.
func (l *Log) Close() error {
	return nil
}
