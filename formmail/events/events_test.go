package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	err  error
	sent []published
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, OutcomeSent, OutcomeFor(200))
	assert.Equal(t, OutcomeRejected, OutcomeFor(400))
	assert.Equal(t, OutcomeRejected, OutcomeFor(413))
	assert.Equal(t, OutcomeFailed, OutcomeFor(500))
}

func TestAMQPPublish(t *testing.T) {
	ch := &fakeChannel{}
	a := &AMQP{Logger: zerolog.Nop(), channel: ch}

	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a.Publish(Event{RequestID: "req-1", Outcome: OutcomeSent, Status: 200, Time: when})

	require.Len(t, ch.sent, 1)
	p := ch.sent[0]
	assert.Equal(t, "formmail", p.exchange)
	assert.Equal(t, "submission.sent", p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.NotEmpty(t, p.msg.MessageId)
	assert.Equal(t, when, p.msg.Timestamp)

	var event Event
	require.NoError(t, json.Unmarshal(p.msg.Body, &event))
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, 200, event.Status)
}

func TestAMQPPublishErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	a := &AMQP{Logger: zerolog.New(&buf), channel: &fakeChannel{err: errors.New("channel closed")}}

	a.Publish(Event{RequestID: "req-2", Outcome: OutcomeFailed, Status: 500})

	assert.Contains(t, buf.String(), "channel closed")
	assert.Contains(t, buf.String(), "Error publishing event.")
}

func TestAMQPCloseWithoutConnection(t *testing.T) {
	assert.NoError(t, (&AMQP{}).Close())
}
