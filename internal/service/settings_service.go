package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/dto"
	"github.com/autoremind/autoremind/internal/repository"
)

const maxNotifFreqDays = 7

type settingsWriter interface {
	RegisterSettings(ctx context.Context, s repository.NotificationSettings) error
}

// SettingsService registers student notification preferences submitted from
// the signup form.
type SettingsService struct {
	students settingsWriter
	logger   *zap.Logger
}

// NewSettingsService constructs the service.
func NewSettingsService(students settingsWriter, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{students: students, logger: logger}
}

// Register stores a student's channels and notification window. The window
// is rounded and clamped to [0, 7] days; channel preference flags follow
// directly from which targets were supplied.
func (s *SettingsService) Register(ctx context.Context, req dto.SettingsRequest) error {
	days := int(math.Round(req.DaysBefore))
	if days < 0 {
		days = 0
	}
	if days > maxNotifFreqDays {
		days = maxNotifFreqDays
	}

	settings := repository.NotificationSettings{
		Email:         strings.TrimSpace(req.UserEmail),
		NotifFreqDays: days,
		EmailPref:     req.Channels.Email,
	}
	if phone := strings.TrimSpace(req.Channels.SMS); phone != "" {
		settings.PhoneNumber = &phone
		settings.PhonePref = true
	}
	if discord := strings.TrimSpace(req.Channels.Discord); discord != "" {
		settings.DiscordID = &discord
		settings.DiscordPref = true
	}

	if err := s.students.RegisterSettings(ctx, settings); err != nil {
		return err
	}

	s.logger.Info("notification settings registered",
		zap.String("email", settings.Email),
		zap.Int("notif_freq_days", days))
	return nil
}
