package notifxconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/Abraxas-365/supplierportal/pkg/notifx"
)

// ConsoleProvider prints emails to the terminal via logx. Intended for development and testing.
type ConsoleProvider struct{}

// NewConsoleProvider creates a new console email provider.
func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

// SendEmail logs the email instead of sending it. Text bodies are logged at
// info so that passcodes are visible during local development.
func (p *ConsoleProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	so := notifx.ApplySendOptions(opts)

	entry := logx.WithContext(ctx).WithFields(logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	})
	for k, v := range so.Tags {
		entry = entry.WithField("tag_"+k, v)
	}
	entry.Info("notifx/console: email sent (dev mode)")

	if msg.TextBody != "" {
		logx.Infof("notifx/console: text body:\n%s", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		logx.Debugf("notifx/console: html body:\n%s", msg.HTMLBody)
	}

	return nil
}
