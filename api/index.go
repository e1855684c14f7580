// Package handler is the plain text contact form function.
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

// Handler is the function entry point. Responses are status + text bodies.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		h = serverless.New(contact.FormatPlain)
	})
	h.ServeHTTP(w, r)
}
