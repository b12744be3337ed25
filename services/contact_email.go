package services

import (
	"fmt"
	"strings"
)

// ContactSubmission is a validated contact-form payload.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// ContactEmailer composes contact emails with a fixed sender and recipient.
type ContactEmailer struct {
	From string
	To   string
}

func NewContactEmailer(from, to string) *ContactEmailer {
	return &ContactEmailer{From: from, To: to}
}

// Compose builds the HTML and plain-text bodies. Field values are inserted as given in
// both; the only transformation is newline to <br> in the HTML message.
func (c *ContactEmailer) Compose(sub ContactSubmission, submissionID string) Email {
	message := strings.ReplaceAll(sub.Message, "\r\n", "\n")

	html := fmt.Sprintf(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`, sub.Name, sub.Email, strings.ReplaceAll(message, "\n", "<br>"))

	text := fmt.Sprintf("New Contact Form Submission\n\nName: %s\nEmail: %s\nMessage:\n%s\n", sub.Name, sub.Email, message)

	var to []string
	if c.To != "" {
		to = []string{c.To}
	}

	email := Email{
		From:    c.From,
		To:      to,
		Subject: "New contact from " + sub.Name,
		HTML:    html,
		Text:    text,
		ReplyTo: sub.Email,
	}
	if submissionID != "" {
		email.Tags = map[string]string{"submission_id": submissionID}
	}
	return email
}
