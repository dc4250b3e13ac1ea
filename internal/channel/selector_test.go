package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoremind/autoremind/internal/models"
)

func TestSelectFixedOrder(t *testing.T) {
	student := models.StudentRecord{
		PhoneNumber: "555-0101",
		Email:       "ada@example.com",
		DiscordID:   "ada",
		PhonePref:   true,
		EmailPref:   true,
		DiscordPref: true,
	}

	channels := Select(student)
	require.Len(t, channels, 3)
	assert.Equal(t, models.ChannelSMS, channels[0].Type)
	assert.Equal(t, models.ChannelEmail, channels[1].Type)
	assert.Equal(t, models.ChannelDiscord, channels[2].Type)
	assert.Equal(t, "555-0101", channels[0].Target)
}

func TestSelectRequiresPrefAndTarget(t *testing.T) {
	// Preference without a target contributes nothing.
	student := models.StudentRecord{PhonePref: true, EmailPref: true, Email: "ada@example.com"}
	channels := Select(student)
	require.Len(t, channels, 1)
	assert.Equal(t, models.ChannelEmail, channels[0].Type)

	// Target without a preference contributes nothing either.
	student = models.StudentRecord{PhoneNumber: "555-0101", DiscordID: "ada", DiscordPref: true}
	channels = Select(student)
	require.Len(t, channels, 1)
	assert.Equal(t, models.ChannelDiscord, channels[0].Type)

	// Whitespace-only targets do not count.
	student = models.StudentRecord{PhonePref: true, PhoneNumber: "   "}
	channels = Select(student)
	require.Len(t, channels, 1)
	assert.Equal(t, models.ChannelNone, channels[0].Type)
}

func TestSelectSentinelWhenNothingQualifies(t *testing.T) {
	channels := Select(models.StudentRecord{})
	require.Len(t, channels, 1)
	assert.Equal(t, models.ChannelNone, channels[0].Type)
	assert.Equal(t, models.NoChannelTarget, channels[0].Target)
}
