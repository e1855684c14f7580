package contact

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Pandentia/formmail/formmail"
	"github.com/Pandentia/formmail/formmail/events"
	"github.com/Pandentia/formmail/formmail/transport"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// contactHandler answers every request exactly once: process decides the
// outcome and the responder writes it.
func (api *API) contactHandler(c *gin.Context) {
	requestID := c.GetString(ContextKeyRequestID)
	logger := api.Logger.With().Str("module", "handler").Str("request_id", requestID).Logger()

	logger.Debug().Str("method", c.Request.Method).Msg("Request received")

	status, message := api.process(c, logger)
	api.Responder.Respond(c, status, message)

	if c.Request.Method == http.MethodPost {
		api.Events.Publish(events.Event{
			RequestID: requestID,
			Outcome:   events.OutcomeFor(status),
			Status:    status,
			Time:      time.Now().UTC(),
		})
	}
}

func (api *API) process(c *gin.Context, logger zerolog.Logger) (int, string) {
	if c.Request.Method != http.MethodPost {
		return http.StatusBadRequest, formmail.MsgInvalidMethod
	}

	// read and decode body
	body, err := readBody(c, api.MaxBodySize)
	if err != nil {
		return rejection(logger, err)
	}
	fields, err := formmail.DecodeFields(c.GetHeader("Content-Type"), body)
	if err != nil {
		return rejection(logger, err)
	}

	// check presence, then values
	submission, err := formmail.NewSubmission(fields)
	if err != nil {
		return rejection(logger, err)
	}
	if err := api.validator.Validate(submission); err != nil {
		return rejection(logger, err)
	}

	msg, err := formmail.Compose(api.Mailbox, submission)
	if err != nil {
		logger.Err(err).Msg("Error composing message")
		return http.StatusInternalServerError, formmail.MsgInternal
	}
	logger.Debug().Int("extra_fields", len(submission.Extra)).Msg("Finished composing message")

	// dial verifies the relay before anything is sent
	err = transport.Send(api.Transport, msg)
	var dialErr *transport.DialError
	switch {
	case errors.As(err, &dialErr):
		logger.Err(err).Msg("Error verifying transporter")
		return http.StatusInternalServerError, formmail.MsgInvalidTransport
	case err != nil:
		logger.Err(err).Msg("Error sending message")
		return http.StatusInternalServerError, formmail.MsgSendFailed
	}

	logger.Info().Msg("Message sent")
	return http.StatusOK, formmail.MsgSent
}

func readBody(c *gin.Context, limit int64) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, formmail.ErrBodyTooLarge
		}
		return nil, err
	}
	return body, nil
}

// rejection maps request shape errors to a client error response.
func rejection(logger zerolog.Logger, err error) (int, string) {
	logger.Debug().Err(err).Msg("Request rejected")

	var missing *formmail.MissingFieldsError
	var invalid *formmail.InvalidFieldsError
	switch {
	case errors.Is(err, formmail.ErrMissingBody):
		return http.StatusBadRequest, formmail.MsgMissingBody
	case errors.Is(err, formmail.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, formmail.MsgBodyTooLarge
	case errors.Is(err, formmail.ErrInvalidBody):
		return http.StatusBadRequest, formmail.MsgInvalidBody
	case errors.As(err, &missing), errors.As(err, &invalid):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusBadRequest, formmail.MsgInvalidBody
	}
}
