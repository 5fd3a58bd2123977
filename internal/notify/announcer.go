// Package notify posts rare unboxings to a Discord channel. It subscribes
// to the internal event bus and announces Covert and Rare Special drops.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/casefall/casefall/internal/domain"
	"github.com/casefall/casefall/internal/event"
	"github.com/casefall/casefall/internal/utils"
)

// EmbedSender is the slice of discordgo.Session the announcer needs.
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer sends Discord notifications for rare drops
type Announcer struct {
	sender    EmbedSender
	channelID string
}

// NewAnnouncer creates a new rare drop announcer. An empty channelID
// disables announcements.
func NewAnnouncer(sender EmbedSender, channelID string) *Announcer {
	return &Announcer{
		sender:    sender,
		channelID: channelID,
	}
}

// Subscribe registers the announcer on the event bus
func (a *Announcer) Subscribe(bus event.Bus) {
	bus.Subscribe(event.CaseOpened, a.handleCaseOpened)
}

func (a *Announcer) handleCaseOpened(_ context.Context, evt event.Event) error {
	if a.channelID == "" {
		return nil
	}

	payload, err := event.DecodePayload[event.CaseOpenedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgParseError, "error", err, "event_type", evt.Type)
		return nil
	}

	if !announceWorthy(payload.Rarity) {
		return nil
	}

	embed := buildDropEmbed(payload)
	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		slog.Error(LogMsgNotificationError, "error", err, "skin", payload.SkinName)
		return err
	}

	slog.Info(LogMsgNotificationSent,
		"username", payload.Username,
		"skin", payload.SkinName,
		"rarity", payload.Rarity)
	return nil
}

func announceWorthy(rarity string) bool {
	return rarity == string(domain.RarityCovert) || rarity == string(domain.RarityRareSpecial)
}

func buildDropEmbed(p event.CaseOpenedPayloadV1) *discordgo.MessageEmbed {
	color := colorCovert
	title := "Covert Unboxed!"
	if p.Rarity == string(domain.RarityRareSpecial) {
		color = colorRareSpecial
		title = "★ Rare Special Unboxed! ★"
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("**%s** just unboxed **%s**!", p.Username, p.SkinName),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Case",
				Value:  p.CaseName,
				Inline: true,
			},
			{
				Name:   "Condition",
				Value:  p.Wear,
				Inline: true,
			},
			{
				Name:   "Value",
				Value:  utils.FormatCents(p.Value),
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Drop Feed",
		},
	}
}
