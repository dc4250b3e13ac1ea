package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoremind/autoremind/internal/models"
)

func TestExportMessageRequests(t *testing.T) {
	dir := t.TempDir()
	bundles := []models.ReminderBundle{
		{
			Student: models.StudentIdentity{ID: "s1", Name: "Ada Lovelace"},
			Channels: []models.Channel{
				{Type: models.ChannelSMS, Target: "555-0101"},
				{Type: models.ChannelDiscord, Target: "ada"},
			},
			Message: "Hey Ada,\nreminder body",
		},
		{
			Student:  models.StudentIdentity{ID: "s2", Name: "Grace Hopper"},
			Channels: []models.Channel{{Type: models.ChannelEmail, Target: "grace@example.com"}},
			Message:  "Hey Grace,",
		},
	}

	paths, err := ExportMessageRequests(dir, bundles, nil)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	sms, err := os.ReadFile(filepath.Join(dir, "sms_message_requests.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(sms), "phone_number,message")
	assert.Contains(t, string(sms), "555-0101")

	email, err := os.ReadFile(filepath.Join(dir, "email_message_requests.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(email), "grace@example.com")

	discord, err := os.ReadFile(filepath.Join(dir, "discord_message_requests.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(discord), "discord_id,message")
	assert.Contains(t, string(discord), "ada")
}

func TestExportMessageRequestsWritesEmptyFiles(t *testing.T) {
	dir := t.TempDir()

	paths, err := ExportMessageRequests(dir, nil, nil)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		// Header only, no data rows.
		assert.Equal(t, 1, strings.Count(strings.TrimSpace(string(data)), "\n")+1)
	}
}

func TestExportMessageRequestsIgnoresSentinelChannel(t *testing.T) {
	dir := t.TempDir()
	bundles := []models.ReminderBundle{
		{
			Student:  models.StudentIdentity{ID: "s1"},
			Channels: []models.Channel{{Type: models.ChannelNone, Target: models.NoChannelTarget}},
			Message:  "unused",
		},
	}

	_, err := ExportMessageRequests(dir, bundles, nil)
	require.NoError(t, err)

	sms, err := os.ReadFile(filepath.Join(dir, "sms_message_requests.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(sms), "unused")
}
