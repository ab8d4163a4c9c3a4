package notifx

import (
	"context"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error
}

// Client is the main entry point for sending notifications.
type Client struct {
	provider    EmailSender
	templates   *TemplateRegistry
	defaultFrom string
}

// NewClient creates a new notification client. defaultFrom is used for
// messages that leave From empty.
func NewClient(provider EmailSender, defaultFrom string) *Client {
	return &Client{
		provider:    provider,
		templates:   NewTemplateRegistry(),
		defaultFrom: defaultFrom,
	}
}

// SendEmail sends an email through the configured provider.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error {
	if c.provider == nil {
		return notifxErrors.New(ErrNoProvider)
	}
	if len(msg.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	if msg.Subject == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty body")
	}
	if msg.From == "" {
		msg.From = c.defaultFrom
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

// RegisterTemplate parses and stores a named template pair. Either body may
// be empty.
func (c *Client) RegisterTemplate(name, htmlTmpl, textTmpl string) error {
	return c.templates.Register(name, htmlTmpl, textTmpl)
}

// SendTemplatedEmail renders a template and sends the resulting email.
func (c *Client) SendTemplatedEmail(ctx context.Context, templateName string, data any, msg EmailMessage, opts ...Option) error {
	rendered, err := c.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	msg.HTMLBody = rendered.HTML
	msg.TextBody = rendered.Text
	return c.SendEmail(ctx, msg, opts...)
}
