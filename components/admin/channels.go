package admin

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Channel types inferred from channel names.
const (
	ChannelTypeEmail    = "email"
	ChannelTypeSMS      = "sms"
	ChannelTypeWhatsApp = "whatsapp"
	ChannelTypeTelegram = "telegram"
	ChannelTypePush     = "push"
)

var channelTypeKeywords = map[string][]string{
	ChannelTypeEmail:    {"email", "mail"},
	ChannelTypeSMS:      {"sms", "text"},
	ChannelTypeWhatsApp: {"whatsapp", "wa"},
	ChannelTypeTelegram: {"telegram"},
	ChannelTypePush:     {"push", "notification"},
}

// IsChannelType reports whether a channel name carries one of the
// keywords of the given type. A name can belong to several types.
func IsChannelType(name, channelType string) bool {
	keywords, ok := channelTypeKeywords[channelType]
	if !ok {
		return false
	}
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ChannelIcon picks the list icon for a channel name.
func ChannelIcon(name string) string {
	switch {
	case IsChannelType(name, ChannelTypeWhatsApp):
		return "message-square"
	case IsChannelType(name, ChannelTypeEmail):
		return "mail"
	default:
		return "bell"
	}
}

// ChannelDefinition describes the channels page: timestamp ids,
// prepended on create, unique names, toast on every mutation.
func ChannelDefinition() Definition[Channel] {
	return Definition[Channel]{
		Name:        CollectionChannels,
		Insert:      Prepend,
		IDs:         TimestampIDs(),
		GetID:       func(c Channel) ID { return c.ID },
		SetID:       func(c *Channel, id ID) { c.ID = id },
		DisplayName: func(c Channel) string { return c.Name },
		Normalize: func(c Channel) Channel {
			c.Name = strings.TrimSpace(c.Name)
			c.Description = strings.TrimSpace(c.Description)
			return c
		},
		Stamp: func(c *Channel, prev *Channel, now time.Time) {
			if prev != nil {
				c.CreatedAt = prev.CreatedAt
				return
			}
			c.CreatedAt = now
		},
		Validate: validateChannel,
		Search: func(c Channel, q string) bool {
			return containsFold(q, c.Name, c.Description)
		},
		Facets: []Facet[Channel]{
			{
				Key:   "channelType",
				Label: "Tipe channel",
				Options: []FacetOption{
					{Value: ChannelTypeEmail, Label: "Email"},
					{Value: ChannelTypeSMS, Label: "SMS"},
					{Value: ChannelTypeWhatsApp, Label: "WhatsApp"},
					{Value: ChannelTypeTelegram, Label: "Telegram"},
					{Value: ChannelTypePush, Label: "Push Notification"},
				},
				Match: func(c Channel, value string, _ time.Time) bool {
					return IsChannelType(c.Name, value)
				},
			},
			hasDescriptionFacet(func(c Channel) string { return c.Description }),
			dateRangeFacet(func(c Channel) *time.Time { return timePtr(c.CreatedAt) }),
		},
		Messages: Messages{
			Banner:        "Channel created successfully",
			BannerTimeout: 5 * time.Second,
			Created:       "Channel berhasil dibuat",
			Updated:       "Channel berhasil diperbarui",
			Deleted:       "Channel berhasil dihapus",
			NoticeTimeout: 3 * time.Second,
		},
	}
}

func validateChannel(c Channel, others []Channel) validation.Errors {
	errs := validation.Errors{
		"name": validation.Validate(c.Name,
			validation.Required.Error("Nama channel wajib diisi"),
			validation.RuneLength(3, 0).Error("Nama channel minimal 3 karakter"),
		),
		"description": validation.Validate(c.Description,
			validation.Required.Error("Deskripsi wajib diisi"),
			validation.RuneLength(10, 0).Error("Deskripsi minimal 10 karakter"),
		),
	}
	if c.Name != "" {
		for _, other := range others {
			if sameFold(other.Name, c.Name) {
				errs["name"] = duplicateError("Nama channel sudah digunakan")
				break
			}
		}
	}
	return errs
}
