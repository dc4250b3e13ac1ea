package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/autoremind/autoremind/pkg/config"
)

// BuildNotifiers constructs an adapter for every channel enabled in config.
// A channel that is enabled but misconfigured is a startup error; disabled
// channels are silently absent and their deliveries count as skipped.
func BuildNotifiers(cfg *config.Config, logger *zap.Logger) ([]Notifier, error) {
	var notifiers []Notifier

	if cfg.SMS.Enabled {
		sms, err := NewSMSNotifier(cfg.SMS, logger)
		if err != nil {
			return nil, fmt.Errorf("sms notifier: %w", err)
		}
		notifiers = append(notifiers, sms)
	}
	if cfg.Email.Enabled {
		email, err := NewEmailNotifier(cfg.Email, logger)
		if err != nil {
			return nil, fmt.Errorf("email notifier: %w", err)
		}
		notifiers = append(notifiers, email)
	}
	if cfg.Discord.Enabled {
		discord, err := NewDiscordNotifier(cfg.Discord, logger)
		if err != nil {
			return nil, fmt.Errorf("discord notifier: %w", err)
		}
		notifiers = append(notifiers, discord)
	}

	return notifiers, nil
}
