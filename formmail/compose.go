package formmail

import (
	"strings"
	"text/template"
)

// Divider separates the message from the closing lines of the body.
var Divider = strings.Repeat("-", 51)

var bodyTemplate = template.Must(template.New("body").Funcs(template.FuncMap{
	"divider": func() string { return Divider },
}).Parse(`You received an email from {{if .HasDisplayName}}{{.SenderName}} ({{.SenderEmail}}){{else}}{{.SenderEmail}}{{end}}.

Here's the message:


{{.Message}}


{{if .Extra}}
{{divider}}
Here's the additional information collected by your email form:

{{range $i, $f := .Extra}}{{if $i}}
{{end}}{{$f.Name}}: {{$f.Value}}{{end}}
{{else}}{{divider}}{{end}}
You can reply to {{if .HasDisplayName}}{{.SenderName}}{{else}}them{{end}} by replying to this e-mail.

Love,
Your Friendly Neighbourhood Mailer 🤖
`))

// ComposeText renders the plain text body for a submission.
func ComposeText(s Submission) (string, error) {
	var b strings.Builder
	if err := bodyTemplate.Execute(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Compose builds the outbound message relaying s to the mailbox.
func Compose(box Mailbox, s Submission) (*Message, error) {
	text, err := ComposeText(s)
	if err != nil {
		return nil, err
	}

	return &Message{
		FromName:    MailerName,
		FromAddress: box.User,
		To:          box.To,
		Subject:     SubjectPrefix + s.Subject,
		Text:        text,
		Sender:      MailerName,
		ReplyTo:     s.SenderEmail,
	}, nil
}
