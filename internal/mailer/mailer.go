package mailer

import (
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Message is the payload handed to the notification dispatcher. The core
// only builds it; transport, retries and delivery are the dispatcher's problem.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single message.
type Mailer interface {
	Send(m Message) error
}

// SMTP delivers messages through an SMTP relay.
type SMTP struct {
	dialer *gomail.Dialer
}

// NewSMTP creates an SMTP-backed mailer.
func NewSMTP(host string, port int, username, password string) *SMTP {
	return &SMTP{dialer: gomail.NewDialer(host, port, username, password)}
}

// Send dials the relay and delivers the message.
func (s *SMTP) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	return s.dialer.DialAndSend(msg)
}

// LogOnly writes messages to the process log instead of sending them.
// Used when no SMTP host is configured, e.g. local development.
type LogOnly struct{}

// Send logs the message and reports success.
func (LogOnly) Send(m Message) error {
	log.Printf("mailer (log only): to=%s subject=%q text=%q", m.To, m.Subject, m.Text)
	return nil
}
