package email

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	err   error
	calls int
	last  Message
}

func (s *stubSender) Send(_ context.Context, msg Message) error {
	s.calls++
	s.last = msg
	return s.err
}

func TestFallbackSender_PrimarySucceeds(t *testing.T) {
	primary := &stubSender{}
	backup := &stubSender{}
	sender := NewFallbackSender(nil, primary, backup)

	err := sender.Send(context.Background(), Message{To: "pat@example.com", Subject: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, backup.calls, "fallback must not be tried when primary succeeds")
}

func TestFallbackSender_FallsBackOnce(t *testing.T) {
	primary := &stubSender{err: errors.New("connection refused")}
	backup := &stubSender{}
	sender := NewFallbackSender(nil, primary, backup)

	msg := Message{To: "pat@example.com", Subject: "Appointment Accepted", Body: "Hello"}
	err := sender.Send(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, backup.calls)
	assert.Equal(t, msg, backup.last, "fallback must receive the same payload")
}

func TestFallbackSender_AllFail(t *testing.T) {
	primary := &stubSender{err: errors.New("tls handshake failed")}
	backup := &stubSender{err: errors.New("ssl handshake failed")}
	sender := NewFallbackSender(nil, primary, backup)

	err := sender.Send(context.Background(), Message{To: "pat@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tls handshake failed")
	assert.Contains(t, err.Error(), "ssl handshake failed")
}

type namedStubSender struct {
	stubSender
	name string
}

func (s *namedStubSender) Name() string { return s.name }

func TestFallbackSender_CountsSentByTransport(t *testing.T) {
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "sent_total"}, []string{"transport"})
	primary := &namedStubSender{name: "smtp-starttls-587"}
	primary.err = errors.New("connection refused")
	backup := &namedStubSender{name: "smtp-ssl-465"}
	sender := NewFallbackSender(nil, primary, backup).InstrumentSends(sent)

	err := sender.Send(context.Background(), Message{To: "pat@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(sent.WithLabelValues("smtp-starttls-587")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sent.WithLabelValues("smtp-ssl-465")))
}

func TestFallbackSender_NoTransports(t *testing.T) {
	sender := NewFallbackSender(nil)
	err := sender.Send(context.Background(), Message{To: "pat@example.com"})
	assert.Error(t, err)
}
