package notify

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefall/casefall/internal/event"
)

type fakeSender struct {
	channelIDs []string
	embeds     []*discordgo.MessageEmbed
	err        error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelIDs = append(f.channelIDs, channelID)
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{}, f.err
}

func publishDrop(t *testing.T, bus event.Bus, rarity string) {
	t.Helper()
	err := bus.Publish(context.Background(), event.Event{
		Type: event.CaseOpened,
		Payload: event.CaseOpenedPayloadV1{
			Username: "player1",
			CaseName: "Spectrum Case",
			SkinName: "AWP | Hyper Beast",
			Rarity:   rarity,
			Wear:     "Factory New",
			Value:    18500,
		},
	})
	require.NoError(t, err)
}

func TestAnnouncer(t *testing.T) {
	t.Run("announces covert drops", func(t *testing.T) {
		sender := &fakeSender{}
		bus := event.NewMemoryBus()
		NewAnnouncer(sender, "chan-123").Subscribe(bus)

		publishDrop(t, bus, "Covert")

		require.Len(t, sender.embeds, 1)
		assert.Equal(t, "chan-123", sender.channelIDs[0])
		assert.Equal(t, "Covert Unboxed!", sender.embeds[0].Title)
		assert.Contains(t, sender.embeds[0].Description, "AWP | Hyper Beast")
		require.Len(t, sender.embeds[0].Fields, 3)
		assert.Equal(t, "$185.00", sender.embeds[0].Fields[2].Value)
	})

	t.Run("rare special gets its own styling", func(t *testing.T) {
		sender := &fakeSender{}
		bus := event.NewMemoryBus()
		NewAnnouncer(sender, "chan-123").Subscribe(bus)

		publishDrop(t, bus, "Rare Special")

		require.Len(t, sender.embeds, 1)
		assert.Equal(t, colorRareSpecial, sender.embeds[0].Color)
	})

	t.Run("ignores common drops", func(t *testing.T) {
		sender := &fakeSender{}
		bus := event.NewMemoryBus()
		NewAnnouncer(sender, "chan-123").Subscribe(bus)

		publishDrop(t, bus, "Mil-Spec")

		assert.Empty(t, sender.embeds)
	})

	t.Run("no channel configured means no sends", func(t *testing.T) {
		sender := &fakeSender{}
		bus := event.NewMemoryBus()
		NewAnnouncer(sender, "").Subscribe(bus)

		publishDrop(t, bus, "Covert")

		assert.Empty(t, sender.embeds)
	})
}
