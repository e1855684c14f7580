package main

import (
	"os"

	"github.com/Pandentia/formmail/formmail/events"
	"github.com/Pandentia/formmail/formmail/logging"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	app := kingpin.New("audit", "Submission event auditor for formmail")

	AMQPURI := app.Flag("amqp-uri", "The AMQP URI to connect to").Envar("AMQP_URI").Short('u').Required().String()

	verbose := app.Flag("verbose", "Enables debug logging").Short('v').Bool()
	pretty := app.Flag("pretty", "Enables pretty logging").Short('p').Bool()
	logFile := app.Flag("log-file", "Also write logs to a rotating file").Envar("LOG_FILE").String()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := logging.New(logging.Options{Verbose: *verbose, Pretty: *pretty, File: *logFile})

	auditor := &events.Auditor{
		Logger: logger,
	}
	if err := auditor.New(*AMQPURI); err != nil {
		logger.Fatal().Err(err).Msg("Error initializing.")
	}
	defer auditor.Close()

	if err := auditor.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Error running auditor.")
	}
}
