package formmail

import "strings"

// Submission represents a validated contact form submission.
// Extra holds every field besides the four required ones, in body order.
type Submission struct {
	SenderName  string `json:"senderName" validate:"max=256,singleline"`
	SenderEmail string `json:"senderEmail" validate:"required,max=254,singleline,email"`
	Subject     string `json:"subject" validate:"max=512,singleline"`
	Message     string `json:"message" validate:"notblank"`

	Extra Fields `json:"-" validate:"-"`
}

// HasDisplayName reports whether the sender gave a non-blank name.
func (s Submission) HasDisplayName() bool {
	return strings.TrimSpace(s.SenderName) != ""
}

// Message represents an outbound email.
type Message struct {
	FromName    string // display name wrapping FromAddress, for instance Mailer
	FromAddress string // mail account address
	To          string // destination mailbox
	Subject     string // mail subject
	Text        string // plain text body
	Sender      string // sender label
	ReplyTo     string // submitter address
}

// From formats the From header value.
func (m *Message) From() string {
	return m.FromName + " <" + m.FromAddress + ">"
}

// Mailbox is the account and destination a message is relayed through.
type Mailbox struct {
	User string
	To   string
}
