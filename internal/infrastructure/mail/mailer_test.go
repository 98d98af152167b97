package mail

import (
	"context"
	"errors"
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &recordingDialer{}
	m := &SMTPMailer{from: "no-reply@9rib.ma", dialer: d}

	require.NoError(t, m.Send(context.Background(), "youssef@example.ma", "Candidature validée", "<p>ok</p>"))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"no-reply@9rib.ma"}, d.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"youssef@example.ma"}, d.sent[0].GetHeader("To"))

	// gomail stores non-ASCII headers as RFC 2047 encoded words.
	raw := d.sent[0].GetHeader("Subject")
	require.Len(t, raw, 1)
	subject, err := new(mime.WordDecoder).DecodeHeader(raw[0])
	require.NoError(t, err)
	assert.Equal(t, "Candidature validée", subject)
}

func TestSMTPMailer_SendError(t *testing.T) {
	d := &recordingDialer{err: errors.New("connection refused")}
	m := &SMTPMailer{from: "no-reply@9rib.ma", dialer: d}

	err := m.Send(context.Background(), "a@b.ma", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPMailer_CanceledContext(t *testing.T) {
	d := &recordingDialer{}
	m := &SMTPMailer{from: "no-reply@9rib.ma", dialer: d}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, "a@b.ma", "s", "b"), context.Canceled)
	assert.Empty(t, d.sent)
}
