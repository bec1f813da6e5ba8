package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) Send(to, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

func newBreaker() *infra.CircuitBreaker {
	return infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp", FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
}

func payload(t *testing.T, p EmailJobPayload) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return raw
}

func TestEmailWorker_Envia(t *testing.T) {
	s := &fakeSender{}
	w := NewEmailWorker(s, newBreaker())

	err := w.Process(context.Background(), payload(t, EmailJobPayload{ToEmail: "a@b.mx", Subject: "s", Body: "b", NotificationID: "n1"}))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a@b.mx"}, s.sent)
}

func TestEmailWorker_PayloadsImposiblesSeDescartan(t *testing.T) {
	s := &fakeSender{}
	w := NewEmailWorker(s, newBreaker())

	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{bad`)))
	assert.NoError(t, w.Process(context.Background(), payload(t, EmailJobPayload{Subject: "sin destino"})))
	assert.Empty(t, s.sent)
}

func TestEmailWorker_SMTPNoConfigurado(t *testing.T) {
	w := NewEmailWorker(&fakeSender{err: infra.ErrMailerNotConfigured}, newBreaker())

	assert.NoError(t, w.Process(context.Background(), payload(t, EmailJobPayload{ToEmail: "a@b.mx"})))
}

func TestEmailWorker_FalloSeReintentaYAbreElCircuito(t *testing.T) {
	smtpErr := errors.New("connection refused")
	cb := newBreaker()
	w := NewEmailWorker(&fakeSender{err: smtpErr}, cb)
	raw := payload(t, EmailJobPayload{ToEmail: "a@b.mx"})

	assert.ErrorIs(t, w.Process(context.Background(), raw), smtpErr)
	assert.ErrorIs(t, w.Process(context.Background(), raw), smtpErr)
	assert.Equal(t, infra.CBOpen, cb.State())
	assert.ErrorIs(t, w.Process(context.Background(), raw), infra.ErrCircuitOpen)
}
