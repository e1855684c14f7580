// Package events publishes submission outcome events to a message broker.
// Events never carry submission content.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Pandentia/formmail/formmail"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// Outcomes of a submission.
const (
	OutcomeSent     = "sent"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Event describes how a submission was answered.
type Event struct {
	RequestID string    `json:"requestId"`
	Outcome   string    `json:"outcome"`
	Status    int       `json:"status"`
	Time      time.Time `json:"time"`
}

// OutcomeFor maps a response status to an outcome.
func OutcomeFor(status int) string {
	switch {
	case status >= 500:
		return OutcomeFailed
	case status >= 400:
		return OutcomeRejected
	default:
		return OutcomeSent
	}
}

// Publisher publishes events.
type Publisher interface {
	Publish(event Event)
}

// Nop discards every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(Event) {}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQP publishes events to the formmail topic exchange.
type AMQP struct {
	Logger zerolog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel channel
}

// New connects to the broker and declares the exchange.
func (a *AMQP) New(MQURI string) error {
	logger := a.Logger.With().Str("module", "events").Logger()

	// connect to the message broker
	conn, err := amqp.Dial(MQURI)
	if err != nil {
		return err
	}
	a.conn = conn
	logger.Debug().Msg("Connection to message broker established")

	// create channel
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	logger.Debug().Msg("Channel created")

	// register the exchange
	err = ch.ExchangeDeclare(formmail.Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return err
	}
	a.channel = ch
	logger.Debug().Msg("Exchange registered")

	return nil
}

// Publish sends event to the exchange. Failures are logged and dropped.
func (a *AMQP) Publish(event Event) {
	logger := a.Logger.With().Str("module", "events").Str("request_id", event.RequestID).Logger()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Err(err).Msg("Error serializing event.")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.channel.Publish(
		formmail.Exchange,
		formmail.SubmissionRoutingKey+"."+event.Outcome,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Timestamp:   event.Time,
			Body:        data,
		},
	)
	if err != nil {
		logger.Err(err).Str("outcome", event.Outcome).Msg("Error publishing event.")
		return
	}
	logger.Debug().Str("outcome", event.Outcome).Msg("Event published")
}

// Close closes the broker connection.
func (a *AMQP) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
