package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/autoremind/autoremind/internal/models"
	"github.com/autoremind/autoremind/pkg/config"
)

// DiscordNotifier DMs students through a bot account. Targets are Discord
// usernames; the guild is searched for an exact (case-insensitive) match
// because the member-search endpoint matches prefixes.
type DiscordNotifier struct {
	session *discordgo.Session
	guildID string
	logger  *zap.Logger
}

// NewDiscordNotifier opens a bot session.
func NewDiscordNotifier(cfg config.DiscordConfig, logger *zap.Logger) (*DiscordNotifier, error) {
	if cfg.BotToken == "" || cfg.GuildID == "" {
		return nil, fmt.Errorf("discord requires DISCORD_BOT_TOKEN and DISCORD_GUILD_ID")
	}
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscordNotifier{session: session, guildID: cfg.GuildID, logger: logger}, nil
}

// Channel implements Notifier.
func (n *DiscordNotifier) Channel() string {
	return models.ChannelDiscord
}

// Send resolves the username, opens a DM channel, and sends the message with
// mentions suppressed.
func (n *DiscordNotifier) Send(ctx context.Context, target, message string) error {
	member, err := n.findMember(target)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("user %q not found in guild %s", target, n.guildID)
	}

	dm, err := n.session.UserChannelCreate(member.User.ID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm for %q: %w", target, err)
	}

	_, err = n.session.ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
		Content:         message,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send dm to %q: %w", target, err)
	}

	n.logger.Debug("discord dm sent", zap.String("username", target))
	return nil
}

func (n *DiscordNotifier) findMember(username string) (*discordgo.Member, error) {
	candidates, err := n.session.GuildMembersSearch(n.guildID, username, 100)
	if err != nil {
		return nil, fmt.Errorf("search guild members: %w", err)
	}
	want := strings.ToLower(username)
	for _, member := range candidates {
		if member.User != nil && strings.ToLower(member.User.Username) == want {
			return member, nil
		}
	}
	return nil, nil
}
