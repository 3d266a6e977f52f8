package smtp

import (
	"bytes"
	"context"
	"fmt"

	mailport "patilog/internal/ports/mail"

	gomail "github.com/wneessen/go-mail"
)

// Transport sends over authenticated SMTP with mandatory TLS (implicit TLS on
// 465, STARTTLS otherwise). The ICS payload goes out as a text/calendar
// attachment next to the HTML body.
type Transport struct {
	client *gomail.Client
	from   string
}

type Options struct {
	Host     string
	Port     int // 465 uses implicit TLS
	Username string
	Password string
	From     string
}

func New(opts Options) (*Transport, error) {
	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(opts.Username),
		gomail.WithPassword(opts.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if opts.Port == 465 {
		clientOpts = append(clientOpts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: init client: %w", err)
	}

	return &Transport{client: client, from: opts.From}, nil
}

func (t *Transport) Send(ctx context.Context, m mailport.Message) error {
	msg := gomail.NewMsg()
	if err := msg.From(t.from); err != nil {
		return fmt.Errorf("smtp: from: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return fmt.Errorf("smtp: to: %w", err)
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, m.HTMLBody)

	if len(m.ICS) > 0 {
		name := m.ICSFilename
		if name == "" {
			name = "event.ics"
		}
		if err := msg.AttachReader(name, bytes.NewReader(m.ICS),
			gomail.WithFileContentType(gomail.ContentType("text/calendar"))); err != nil {
			return fmt.Errorf("smtp: attach: %w", err)
		}
	}

	if err := t.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}
