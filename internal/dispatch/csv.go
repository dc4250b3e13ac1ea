package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
	"github.com/autoremind/autoremind/pkg/export"
)

// channelExportColumns maps each channel to its message-request header pair.
// The files are always written, one per channel, even when a channel collected
// zero rows, so downstream senders never pick up a stale export.
var channelExportColumns = map[string]struct {
	target   string
	filename string
}{
	models.ChannelSMS:     {target: "phone_number", filename: "sms_message_requests.csv"},
	models.ChannelEmail:   {target: "email", filename: "email_message_requests.csv"},
	models.ChannelDiscord: {target: "discord_id", filename: "discord_message_requests.csv"},
}

// ExportMessageRequests writes one CSV per channel under dir, each row a
// (target, message) pair taken from the bundles. Returns the written paths.
func ExportMessageRequests(dir string, bundles []models.ReminderBundle, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := map[string][]map[string]string{}
	for _, bundle := range bundles {
		for _, ch := range bundle.Channels {
			columns, ok := channelExportColumns[ch.Type]
			if !ok {
				continue
			}
			rows[ch.Type] = append(rows[ch.Type], map[string]string{
				columns.target: ch.Target,
				"message":      bundle.Message,
			})
		}
	}

	exporter := export.NewCSVExporter()
	paths := make([]string, 0, len(channelExportColumns))
	for _, channel := range []string{models.ChannelSMS, models.ChannelEmail, models.ChannelDiscord} {
		columns := channelExportColumns[channel]
		path, err := exporter.WriteFile(dir, columns.filename, export.Dataset{
			Headers: []string{columns.target, "message"},
			Rows:    rows[channel],
		})
		if err != nil {
			return paths, fmt.Errorf("export %s message requests: %w", channel, err)
		}
		logger.Info("wrote message requests",
			zap.String("channel", channel),
			zap.Int("rows", len(rows[channel])),
			zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}
