package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/sbaral/bookpasal-backend/pkg/config"
)

// Message is the transport-agnostic outbound email contract.
type Message struct {
	To      []string
	BCC     []string
	Subject string
	Body    string
}

// SendgridClient delivers messages through the SendGrid v3 API.
type SendgridClient struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendgridClient builds the production mail transport.
func NewSendgridClient(cfg config.SendgridConfig, store config.StoreConfig) (*SendgridClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key required")
	}
	if store.FromEmail == "" {
		return nil, fmt.Errorf("from email required")
	}
	return &SendgridClient{
		client:   sendgrid.NewSendClient(cfg.APIKey),
		from:     store.FromEmail,
		fromName: store.Name,
	}, nil
}

// Send delivers one message and returns the provider message id.
func (c *SendgridClient) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("message requires at least one recipient")
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(sgmail.NewEmail(c.fromName, c.from))
	v3.Subject = msg.Subject
	v3.AddContent(sgmail.NewContent("text/plain", msg.Body))

	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	for _, bcc := range msg.BCC {
		p.AddBCCs(sgmail.NewEmail("", bcc))
	}
	v3.AddPersonalizations(p)

	resp, err := c.client.SendWithContext(ctx, v3)
	if err != nil {
		return "", fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	ids := resp.Headers["X-Message-Id"]
	if len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
