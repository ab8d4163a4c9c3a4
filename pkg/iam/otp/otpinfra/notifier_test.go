package otpinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/notifx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	msgs []notifx.EmailMessage
}

func (c *captureSender) SendEmail(_ context.Context, msg notifx.EmailMessage, _ ...notifx.Option) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestEmailNotifier_SendOTP(t *testing.T) {
	sender := &captureSender{}
	n, err := NewEmailNotifier(notifx.NewClient(sender, "noreply@example.com"), 10*time.Minute)
	require.NoError(t, err)

	require.NoError(t, n.SendOTP(context.Background(), "buyer@acme.com", "482913"))

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, []string{"buyer@acme.com"}, msg.To)
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, PasscodeSubject, msg.Subject)
	assert.Contains(t, msg.TextBody, "Your one-time password is: 482913")
	assert.Contains(t, msg.TextBody, "expire in 10 minutes")
	assert.Contains(t, msg.HTMLBody, "482913")
}
