package main

import (
	"os"

	"github.com/Pandentia/formmail/formmail/config"
	"github.com/Pandentia/formmail/formmail/events"
	"github.com/Pandentia/formmail/formmail/ingress/contact"
	"github.com/Pandentia/formmail/formmail/logging"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	app := kingpin.New("formmail", "Contact form to email relay")

	bind := app.Flag("bind", "The address to bind to").Default("[::]:8080").Envar("BIND").Short('b').String()
	path := app.Flag("path", "The route of the contact endpoint").Default("/").Envar("CONTACT_PATH").String()
	format := app.Flag("format", "The response format").Default(contact.FormatPlain).Envar("RESPONSE_FORMAT").Short('f').Enum(contact.Formats...)
	envFiles := app.Flag("env-file", "A .env file to load before reading the environment").Default(".env").Strings()
	allowOrigins := app.Flag("allow-origin", "An origin allowed to post cross-site").Envar("ALLOW_ORIGINS").Strings()
	maxBodySize := app.Flag("max-body-size", "The largest accepted request body").Default("1MB").Envar("MAX_BODY_SIZE").Bytes()
	AMQPURI := app.Flag("amqp-uri", "The AMQP URI to publish submission events to").Envar("AMQP_URI").Short('u').String()

	verbose := app.Flag("verbose", "Enables debug logging").Short('v').Bool()
	pretty := app.Flag("pretty", "Enables pretty logging").Short('p').Bool()
	logFile := app.Flag("log-file", "Also write logs to a rotating file").Envar("LOG_FILE").String()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := logging.New(logging.Options{Verbose: *verbose, Pretty: *pretty, File: *logFile})

	cfg, err := config.Load(*envFiles...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error loading configuration.")
	}

	responder, err := contact.NewResponder(*format)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error selecting response format.")
	}

	ingest := &contact.API{
		Logger:       logger,
		Mailbox:      cfg.Mailbox(),
		Transport:    cfg.NewTransport(logger),
		Responder:    responder,
		Path:         *path,
		MaxBodySize:  int64(*maxBodySize),
		AllowOrigins: *allowOrigins,
	}

	if *AMQPURI != "" {
		publisher := &events.AMQP{Logger: logger}
		if err := publisher.New(*AMQPURI); err != nil {
			logger.Fatal().Err(err).Msg("Error connecting to message broker.")
		}
		defer publisher.Close()
		ingest.Events = publisher
	}

	if err := ingest.New(); err != nil {
		logger.Fatal().Err(err).Msg("Error initializing.")
	}
	if err := ingest.Run(*bind); err != nil {
		logger.Fatal().Err(err).Msg("Error running contact API.")
	}
}
