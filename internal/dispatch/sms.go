package dispatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
	"github.com/autoremind/autoremind/pkg/config"
)

var nonDigits = regexp.MustCompile(`\D`)

// SMSNotifier sends reminders through a Twilio messaging service.
type SMSNotifier struct {
	client     *twilio.RestClient
	serviceSID string
	logger     *zap.Logger
}

// NewSMSNotifier builds the Twilio adapter.
func NewSMSNotifier(cfg config.SMSConfig, logger *zap.Logger) (*SMSNotifier, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.MessagingServiceSID == "" {
		return nil, fmt.Errorf("sms requires TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, and TWILIO_MESSAGING_SERVICE_SID")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMSNotifier{client: client, serviceSID: cfg.MessagingServiceSID, logger: logger}, nil
}

// Channel implements Notifier.
func (n *SMSNotifier) Channel() string {
	return models.ChannelSMS
}

// NormalizeUSNumber strips formatting and prefixes the US country code.
func NormalizeUSNumber(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if strings.HasPrefix(digits, "1") && len(digits) == 11 {
		return "+" + digits
	}
	return "+1" + digits
}

// Send delivers one reminder to one phone number.
func (n *SMSNotifier) Send(ctx context.Context, target, message string) error {
	to := NormalizeUSNumber(target)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetMessagingServiceSid(n.serviceSID)
	params.SetBody(message)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms to %s: %w", to, err)
	}

	n.logger.Debug("sms sent", zap.String("to", to))
	return nil
}
