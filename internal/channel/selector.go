package channel

import (
	"strings"

	"github.com/autoremind/autoremind/internal/models"
)

// Select returns the ordered channels a student has opted into. Channels are
// evaluated in a fixed order (phone, email, discord) and included only when
// both the preference flag is set and the target is non-empty. When nothing
// qualifies a single sentinel entry is returned, never an empty list.
func Select(student models.StudentRecord) []models.Channel {
	var channels []models.Channel

	if student.PhonePref && strings.TrimSpace(student.PhoneNumber) != "" {
		channels = append(channels, models.Channel{Type: models.ChannelSMS, Target: student.PhoneNumber})
	}
	if student.EmailPref && strings.TrimSpace(student.Email) != "" {
		channels = append(channels, models.Channel{Type: models.ChannelEmail, Target: student.Email})
	}
	if student.DiscordPref && strings.TrimSpace(student.DiscordID) != "" {
		channels = append(channels, models.Channel{Type: models.ChannelDiscord, Target: student.DiscordID})
	}

	if len(channels) == 0 {
		return []models.Channel{{Type: models.ChannelNone, Target: models.NoChannelTarget}}
	}
	return channels
}
