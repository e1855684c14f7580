// Package serverless builds http.Handlers for function platforms that call
// a Go Handler(w, r) per request.
package serverless

import (
	"net/http"
	"os"

	"github.com/Pandentia/formmail/formmail"
	"github.com/Pandentia/formmail/formmail/config"
	"github.com/Pandentia/formmail/formmail/ingress/contact"
	"github.com/Pandentia/formmail/formmail/logging"
	"github.com/Pandentia/formmail/formmail/transport"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// New builds the contact handler from the environment.
// If the configuration cannot be loaded, requests are still checked as usual
// and valid submissions are answered with a transporter configuration error.
func New(format string) http.Handler {
	logger := logging.New(logging.Options{Verbose: os.Getenv("FORMMAIL_DEBUG") == "true"})
	return build(logger, format, config.Load)
}

func build(logger zerolog.Logger, format string, load func(...string) (*config.Mail, error)) http.Handler {
	logger = logger.With().Str("format", format).Logger()

	responder, err := contact.NewResponder(format)
	if err != nil {
		logger.Err(err).Msg("Error selecting responder, using plain text.")
		responder = contact.PlainResponder{}
	}

	api := &contact.API{
		Logger:    logger,
		Responder: responder,
		CatchAll:  true,
	}

	cfg, err := load()
	if err == nil {
		api.Mailbox = cfg.Mailbox()
		api.Transport = cfg.NewTransport(logger)
		err = api.New()
	}
	if err != nil {
		logger.Err(err).Msg("Error loading mail configuration.")
		api.Mailbox = unconfigured
		api.Transport = transport.Unavailable{Err: err}
		_ = api.New() // only fails without a transport or mailbox
	}
	return api.Engine()
}

// unconfigured stands in for the mailbox when none could be loaded.
// Nothing is ever sent to it.
var unconfigured = formmail.Mailbox{User: "unconfigured", To: "unconfigured"}
