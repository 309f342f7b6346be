package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondKey is respondEphemeral over an i18n key.
func (h *Handler) respondKey(s *discordgo.Session, i *discordgo.Interaction, key string, data map[string]any) {
	respondEphemeral(s, i, h.t(key, data))
}

// getMember fetches a guild member through the expiring cache.
func (h *Handler) getMember(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
	if cached, ok := h.members.Get(guildID + ":" + userID); ok {
		return cached.(*discordgo.Member), nil
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return nil, err
	}
	h.members.SetDefault(guildID+":"+userID, member)
	return member, nil
}

func (h *Handler) memberHasRole(s *discordgo.Session, guildID, userID, roleID string) bool {
	if roleID == "" {
		return false
	}
	member, err := h.getMember(s, guildID, userID)
	if err != nil {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}
