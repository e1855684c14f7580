package contact

import (
	"errors"
	"net/http"

	"github.com/Pandentia/formmail/formmail"
	"github.com/Pandentia/formmail/formmail/events"
	"github.com/Pandentia/formmail/formmail/transport"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// API describes the contact form ingress API.
type API struct {
	Logger zerolog.Logger

	Mailbox   formmail.Mailbox    // account and destination messages are relayed through
	Transport transport.Transport // relay used for every submission
	Responder Responder           // response encoding, defaults to PlainResponder
	Events    events.Publisher    // outcome events, defaults to events.Nop

	Path         string   // route of the contact endpoint, defaults to "/"
	CatchAll     bool     // answer every path with the contact handler (serverless)
	MaxBodySize  int64    // defaults to formmail.DefaultMaxBodySize
	AllowOrigins []string // CORS origins, disabled when empty

	validator *formmail.Validator
}

// New checks the API configuration and fills in defaults.
func (api *API) New() error {
	logger := api.Logger.With().Str("module", "initializer").Logger()

	if api.Transport == nil {
		return errors.New("contact: no transport configured")
	}
	if api.Mailbox.User == "" || api.Mailbox.To == "" {
		return errors.New("contact: mailbox user and destination are required")
	}
	if api.Responder == nil {
		api.Responder = PlainResponder{}
	}
	if api.Events == nil {
		api.Events = events.Nop{}
	}
	if api.Path == "" {
		api.Path = "/"
	}
	if api.MaxBodySize <= 0 {
		api.MaxBodySize = formmail.DefaultMaxBodySize
	}
	api.validator = formmail.NewValidator()
	logger.Debug().Str("path", api.Path).Bool("catch_all", api.CatchAll).Msg("API initialized")

	return nil
}

// Engine builds the gin engine serving the API.
func (api *API) Engine() *gin.Engine {
	r := gin.New()

	r.Use(RequestID())
	r.Use(RequestLogger(api.Logger))
	r.Use(Recovery(api.Logger, api.Responder))
	if len(api.AllowOrigins) > 0 {
		r.Use(CORS(api.AllowOrigins))
	}

	if api.CatchAll {
		r.NoRoute(api.contactHandler)
		return r
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.Any(api.Path, api.contactHandler)
	// methods outside Any never match a route
	r.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path == api.Path {
			api.contactHandler(c)
		}
	})

	return r
}

// Run runs the API instance at a given bind address.
func (api *API) Run(bind string) error {
	gin.SetMode(gin.ReleaseMode)

	return api.Engine().Run(bind)
}
