package otpinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/notifx"
)

const (
	PasscodeTemplate = "otp_passcode"
	PasscodeSubject  = "Your Supplier Portal Access Code"
)

const passcodeText = `Your one-time password is: {{.Code}}

This code will expire in {{.ExpiresInMinutes}} minutes.

If you didn't request this code, please ignore this email.`

const passcodeHTML = `<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #333;">Supplier Portal Access</h2>
    <p>Your one-time password is:</p>
    <div style="background-color: #f0f0f0; padding: 20px; text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">
      {{.Code}}
    </div>
    <p style="color: #666;">This code will expire in {{.ExpiresInMinutes}} minutes.</p>
    <p style="color: #666; font-size: 12px;">If you didn't request this code, please ignore this email.</p>
  </body>
</html>`

type passcodeEmail struct {
	Code             string
	ExpiresInMinutes int
}

// EmailNotifier implements otp.NotificationService over a notifx client
type EmailNotifier struct {
	client *notifx.Client
	ttl    time.Duration
}

// NewEmailNotifier registers the passcode template on client. ttl is only
// used for the expiry line in the message.
func NewEmailNotifier(client *notifx.Client, ttl time.Duration) (*EmailNotifier, error) {
	if err := client.RegisterTemplate(PasscodeTemplate, passcodeHTML, passcodeText); err != nil {
		return nil, err
	}
	return &EmailNotifier{client: client, ttl: ttl}, nil
}

func (n *EmailNotifier) SendOTP(ctx context.Context, contact kernel.Email, code string) error {
	return n.client.SendTemplatedEmail(ctx, PasscodeTemplate,
		passcodeEmail{Code: code, ExpiresInMinutes: int(n.ttl.Minutes())},
		notifx.EmailMessage{
			To:      []string{contact.String()},
			Subject: PasscodeSubject,
		},
		notifx.WithTag("purpose", "otp"),
	)
}
