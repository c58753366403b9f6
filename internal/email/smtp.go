package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the connection settings for one SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// SSL selects implicit TLS (port 465 style). When false the dialer
	// upgrades with STARTTLS (port 587 style).
	SSL     bool
	Timeout time.Duration
}

// SMTPSender delivers mail over a single SMTP transport. Two of these,
// one STARTTLS and one SSL, are usually composed behind a
// FallbackSender.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
	name    string
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	mode := "starttls"
	if cfg.SSL {
		mode = "ssl"
	}

	return &SMTPSender{
		dialer:  d,
		from:    cfg.From,
		timeout: timeout,
		name:    fmt.Sprintf("smtp-%s-%d", mode, cfg.Port),
	}
}

// Name identifies the transport in logs and metrics.
func (s *SMTPSender) Name() string {
	return s.name
}

// Send dials and delivers msg. The attempt is bounded by the configured
// timeout; gomail has no context support, so the dial runs in its own
// goroutine and a timeout counts as a transport failure.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: send failed: %w", s.name, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: send timed out: %w", s.name, ctx.Err())
	}
}
