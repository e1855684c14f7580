package contact

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Response formats.
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
)

// Formats lists the valid response formats.
var Formats = []string{FormatPlain, FormatJSON}

// Responder writes the single response of a request.
type Responder interface {
	Respond(c *gin.Context, status int, message string)
}

// PlainResponder writes the message as a text/plain body.
type PlainResponder struct{}

// Respond implements Responder.
func (PlainResponder) Respond(c *gin.Context, status int, message string) {
	c.String(status, message)
}

// Envelope is the JSON body written by EnvelopeResponder.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// EnvelopeResponder wraps the status and message in a JSON Envelope.
type EnvelopeResponder struct{}

// Respond implements Responder.
func (EnvelopeResponder) Respond(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{StatusCode: status, Message: message})
}

// NewResponder returns the Responder for a format name.
func NewResponder(format string) (Responder, error) {
	switch format {
	case FormatPlain, "":
		return PlainResponder{}, nil
	case FormatJSON:
		return EnvelopeResponder{}, nil
	}
	return nil, fmt.Errorf("unknown response format %q", format)
}
