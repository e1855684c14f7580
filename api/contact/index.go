// Package handler is the JSON contact form function.
package handler

import (
	"net/http"
	"sync"

	"github.com/Pandentia/formmail/formmail/ingress/contact"
	"github.com/Pandentia/formmail/formmail/serverless"
)

var (
	once sync.Once
	h    http.Handler
)

// Handler is the function entry point. Responses are {statusCode, message} envelopes.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		h = serverless.New(contact.FormatJSON)
	})
	h.ServeHTTP(w, r)
}
