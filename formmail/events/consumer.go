package events

import (
	"encoding/json"

	"github.com/Pandentia/formmail/formmail"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// Handler is called for every event received by an Auditor.
type Handler func(event Event) error

// Auditor consumes submission events from the formmail exchange.
type Auditor struct {
	Logger  zerolog.Logger
	Handler Handler // defaults to logging the event

	conn    *amqp.Connection
	channel *amqp.Channel
}

// New connects to the broker and binds the audit queue to every submission outcome.
// It should only be called once.
func (a *Auditor) New(MQURI string) error {
	logger := a.Logger.With().Str("module", "auditor").Logger()

	conn, err := amqp.Dial(MQURI)
	if err != nil {
		return err
	}
	a.conn = conn
	logger.Debug().Msg("Connection established")

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	a.channel = channel
	logger.Debug().Msg("Channel established")

	// set prefetching
	if err := channel.Qos(1, 0, false); err != nil {
		_ = conn.Close()
		return err
	}

	// register the exchange
	err = channel.ExchangeDeclare(formmail.Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return err
	}

	// register and bind the audit queue
	queue, err := channel.QueueDeclare(formmail.AuditQueue, true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return err
	}
	err = channel.QueueBind(queue.Name, formmail.SubmissionRoutingKey+".*", formmail.Exchange, false, nil)
	if err != nil {
		_ = conn.Close()
		return err
	}
	logger.Debug().Msg("Audit queue bound to exchange")

	if a.Handler == nil {
		a.Handler = a.logEvent
	}
	return nil
}

// Run consumes events until the connection closes.
func (a *Auditor) Run() error {
	logger := a.Logger.With().Str("module", "auditor").Logger()
	logger.Info().Msg("Auditor started")

	deliveries, err := a.channel.Consume(formmail.AuditQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	for delivery := range deliveries {
		a.handle(logger, delivery)
	}
	return nil
}

// Close closes the broker connection.
func (a *Auditor) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}

func (a *Auditor) handle(logger zerolog.Logger, delivery amqp.Delivery) {
	var event Event
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		logger.Err(err).Bytes("data", delivery.Body).Msg("Error deserializing. Rejecting and continuing.")
		_ = delivery.Reject(false) // garbage is never requeued
		return
	}

	if err := a.Handler(event); err != nil {
		logger.Err(err).Str("request_id", event.RequestID).Msg("Error handling event. Requeuing delivery.")
		_ = delivery.Reject(true)
		return
	}
	_ = delivery.Ack(false)
}

func (a *Auditor) logEvent(event Event) error {
	a.Logger.Info().
		Str("request_id", event.RequestID).
		Str("outcome", event.Outcome).
		Int("status", event.Status).
		Time("time", event.Time).
		Msg("Submission")
	return nil
}
