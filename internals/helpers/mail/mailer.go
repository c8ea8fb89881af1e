// internals/helpers/mail/mailer.go
package helper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"sync"

	"schoolerp_backend/internals/configs"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Message struct {
	To          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewFromEnv returns SendGrid when SENDGRID_API_KEY is set, otherwise the console mailer.
func NewFromEnv() Mailer {
	if configs.SendgridAPIKey == "" {
		log.Println("⚠️ SENDGRID_API_KEY not set, mails are printed to the log")
		return NewConsoleMailer(configs.AppName, configs.MailFrom)
	}
	return NewSendgridMailer(configs.SendgridAPIKey, configs.AppName, configs.MailFrom)
}

/* ===============================
   SendGrid
=================================*/

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

func NewSendgridMailer(key, appName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:        key,
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (m *SendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.TextContent))
	if msg.HTMLContent != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTMLContent))
	}
	return v3
}

func (m *SendgridMailer) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return nil
	}
	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

/* ===============================
   Console (dev / tests)
=================================*/

type ConsoleMailer struct {
	from       mail.Address
	subjPrefix string

	mu   sync.Mutex
	Sent []Message
}

func NewConsoleMailer(appName, fromEmail string) *ConsoleMailer {
	return &ConsoleMailer{
		from:       mail.Address{Name: appName, Address: fromEmail},
		subjPrefix: "[" + appName + "] ",
	}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.String())
	}
	log.Printf("[MAIL] from=%s to=%s subject=%q\n%s", m.from.String(), strings.Join(to, ", "), m.subjPrefix+msg.Subject, msg.TextContent)

	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	return nil
}

func (m *ConsoleMailer) Last() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
