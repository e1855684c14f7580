package formmail

// Exchange describes the RabbitMQ exchange name for outcome events.
const Exchange = "formmail"

// Routing key prefixes.
const (
	SubmissionRoutingKey = "submission"
)

// AuditQueue is the durable queue the auditor consumes submission events from.
const AuditQueue = "formmail.audit"

// Submission field names.
const (
	FieldMessage     = "message"
	FieldSenderEmail = "senderEmail"
	FieldSenderName  = "senderName"
	FieldSubject     = "subject"
)

// RequiredFields lists the fields every submission must carry, in the order
// they are reported when missing.
var RequiredFields = []string{
	FieldMessage,
	FieldSenderEmail,
	FieldSenderName,
	FieldSubject,
}

// Relay defaults.
const (
	DefaultSMTPHost = "smtp.dreamhost.com"
	DefaultSMTPPort = 465
)

// Fixed message labels.
const (
	MailerName    = "Mailer"
	SubjectPrefix = "Received email: "
)

// Response messages.
const (
	MsgInvalidMethod    = "Invalid HTTP method."
	MsgMissingBody      = "Missing request body."
	MsgInvalidBody      = "Invalid request body."
	MsgBodyTooLarge     = "Request body too large."
	MsgInvalidTransport = "Invalid transporter config."
	MsgSendFailed       = "Message failed to send"
	MsgInternal         = "Internal server error."
	MsgSent             = "Sent!"
)

// DefaultMaxBodySize caps the size of an accepted request body.
const DefaultMaxBodySize = 1 << 20
