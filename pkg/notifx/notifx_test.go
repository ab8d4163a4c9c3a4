package notifx_test

import (
	"context"
	"testing"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/notifx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	sent []notifx.EmailMessage
	opts []notifx.SendOptions
}

func (s *captureSender) SendEmail(_ context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	s.sent = append(s.sent, msg)
	s.opts = append(s.opts, notifx.ApplySendOptions(opts))
	return nil
}

func TestClient_SendTemplatedEmail(t *testing.T) {
	sender := &captureSender{}
	client := notifx.NewClient(sender, "noreply@example.com")

	require.NoError(t, client.RegisterTemplate("greeting",
		`<p>Hello {{.Name}}</p>`,
		`Hello {{.Name}}`,
	))

	err := client.SendTemplatedEmail(context.Background(), "greeting",
		map[string]string{"Name": "<Ana>"},
		notifx.EmailMessage{To: []string{"ana@example.com"}, Subject: "Hi"},
		notifx.WithTags(map[string]string{"purpose": "test"}),
	)
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, "<p>Hello &lt;Ana&gt;</p>", msg.HTMLBody)
	assert.Equal(t, "Hello <Ana>", msg.TextBody)
	assert.Equal(t, "test", sender.opts[0].Tags["purpose"])
}

func TestClient_RejectsInvalidMessages(t *testing.T) {
	client := notifx.NewClient(&captureSender{}, "")
	ctx := context.Background()

	err := client.SendEmail(ctx, notifx.EmailMessage{Subject: "s", TextBody: "b"})
	assert.True(t, errx.HasCode(err, notifx.ErrInvalidMessage))

	err = client.SendEmail(ctx, notifx.EmailMessage{To: []string{"a@b.co"}, TextBody: "b"})
	assert.True(t, errx.HasCode(err, notifx.ErrInvalidMessage))

	err = client.SendEmail(ctx, notifx.EmailMessage{To: []string{"a@b.co"}, Subject: "s"})
	assert.True(t, errx.HasCode(err, notifx.ErrInvalidMessage))
}

func TestClient_NoProvider(t *testing.T) {
	client := notifx.NewClient(nil, "")
	err := client.SendEmail(context.Background(), notifx.EmailMessage{To: []string{"a@b.co"}, Subject: "s", TextBody: "b"})
	assert.True(t, errx.HasCode(err, notifx.ErrNoProvider))
}

func TestTemplateRegistry_Errors(t *testing.T) {
	reg := notifx.NewTemplateRegistry()

	_, err := reg.Render("missing", nil)
	assert.True(t, errx.HasCode(err, notifx.ErrTemplateNotFound))

	err = reg.Register("broken", "{{.Unclosed", "")
	assert.True(t, errx.HasCode(err, notifx.ErrTemplateParse))

	err = reg.Register("empty", "", "")
	assert.True(t, errx.HasCode(err, notifx.ErrTemplateParse))
}

func TestSendOptions_TagsMerge(t *testing.T) {
	so := notifx.ApplySendOptions([]notifx.Option{
		notifx.WithTags(map[string]string{"purpose": "otp", "app": "portal"}),
		notifx.WithTag("purpose", "login"),
		notifx.WithConfigID("portal-set"),
	})

	assert.Equal(t, map[string]string{"purpose": "login", "app": "portal"}, so.Tags)
	assert.Equal(t, "portal-set", so.ConfigID)
}
