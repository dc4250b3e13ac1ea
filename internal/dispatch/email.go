package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
	"github.com/autoremind/autoremind/pkg/config"
)

// EmailNotifier sends plain-text reminders through SendGrid.
type EmailNotifier struct {
	key     string
	from    *sgmail.Email
	subject string
	logger  *zap.Logger
}

// NewEmailNotifier builds the SendGrid adapter.
func NewEmailNotifier(cfg config.EmailConfig, logger *zap.Logger) (*EmailNotifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("email requires SENDGRID_API_KEY")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailNotifier{
		key:     cfg.APIKey,
		from:    sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		subject: cfg.Subject,
		logger:  logger,
	}, nil
}

// Channel implements Notifier.
func (n *EmailNotifier) Channel() string {
	return models.ChannelEmail
}

// Send delivers one reminder to one address.
func (n *EmailNotifier) Send(ctx context.Context, target, message string) error {
	to := sgmail.NewEmail("", target)
	mail := sgmail.NewSingleEmail(n.from, n.subject, to, message, "")

	client := sendgrid.NewSendClient(n.key)
	res, err := client.SendWithContext(ctx, mail)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", target, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send email to %s: status %d: %s", target, res.StatusCode, res.Body)
	}

	n.logger.Debug("email sent", zap.String("to", target))
	return nil
}
