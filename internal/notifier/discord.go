package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/cityteam/guests-api/models"
)

// Notifier announces noteworthy shelter events to the staff channel.
type Notifier interface {
	NotifyImport(facility models.Facility, registrationDate string, count int) error
	NotifyBan(guest models.Guest, ban models.Ban) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyImport(facility models.Facility, registrationDate string, count int) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	message := fmt.Sprintf("🛏️ **Registrations Imported**\n**Facility:** %s\n**Date:** %s\n**Mats:** %d",
		facility.Name,
		registrationDate,
		count,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}

func (n *DiscordNotifier) NotifyBan(guest models.Guest, ban models.Ban) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	status := "inactive"
	if ban.Active {
		status = "active"
	}

	message := fmt.Sprintf("🚫 **Ban Recorded**\n**Guest:** %s %s\n**Window:** %s - %s\n**Status:** %s\n**Staff:** %s",
		guest.FirstName,
		guest.LastName,
		ban.BanFrom,
		ban.BanTo,
		status,
		ban.Staff,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}
