package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// FallbackSender tries an ordered list of transports and stops at the
// first success. Every transport failing yields a single diagnostic
// error; it never panics. Callers treat delivery as best effort.
type FallbackSender struct {
	senders []Sender
	logger  *zerolog.Logger
	sent    *prometheus.CounterVec
}

func NewFallbackSender(logger *zerolog.Logger, senders ...Sender) *FallbackSender {
	return &FallbackSender{
		senders: senders,
		logger:  logger,
	}
}

// InstrumentSends counts successful deliveries on c, labelled by the
// transport that carried the message.
func (f *FallbackSender) InstrumentSends(c *prometheus.CounterVec) *FallbackSender {
	f.sent = c
	return f
}

func (f *FallbackSender) Send(ctx context.Context, msg Message) error {
	if len(f.senders) == 0 {
		return fmt.Errorf("email: no transports configured")
	}

	var failures []string
	for i, sender := range f.senders {
		err := sender.Send(ctx, msg)
		if err == nil {
			if f.sent != nil {
				f.sent.WithLabelValues(transportName(sender, i)).Inc()
			}
			if i > 0 && f.logger != nil {
				f.logger.Info().
					Str("to", msg.To).
					Int("attempt", i+1).
					Msg("email delivered via fallback transport")
			}
			return nil
		}

		failures = append(failures, err.Error())
		if f.logger != nil {
			f.logger.Warn().
				Err(err).
				Str("to", msg.To).
				Int("attempt", i+1).
				Msg("email transport failed")
		}
	}

	return fmt.Errorf("email: all transports failed: %s", strings.Join(failures, "; "))
}

func transportName(s Sender, i int) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("transport-%d", i+1)
}

// NewDualSMTP builds the standard delivery chain: STARTTLS first, SSL
// as the single fallback.
func NewDualSMTP(primary, fallback SMTPConfig, logger *zerolog.Logger) *FallbackSender {
	return NewFallbackSender(logger, NewSMTPSender(primary), NewSMTPSender(fallback))
}
