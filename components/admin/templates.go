package admin

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ReferenceLookup resolves the category and channel a template points at.
type ReferenceLookup interface {
	Category(id ID) (Category, bool)
	Channel(id ID) (Channel, bool)
	CategoryOptions() []FacetOption
	ChannelOptions() []FacetOption
}

// TemplateChannelStyle is the badge styling and icon for a channel name.
type TemplateChannelStyle struct {
	Class string
	Icon  string
}

// ChannelStyle matches the channel name exactly (case-insensitive).
func ChannelStyle(name string) TemplateChannelStyle {
	switch strings.ToLower(name) {
	case "email":
		return TemplateChannelStyle{Class: "bg-blue-100 text-blue-700 border-blue-200", Icon: "mail"}
	case "sms":
		return TemplateChannelStyle{Class: "bg-green-100 text-green-700 border-green-200", Icon: "message-square"}
	case "whatsapp":
		return TemplateChannelStyle{Class: "bg-emerald-100 text-emerald-700 border-emerald-200", Icon: "message-square"}
	case "in-app notification":
		return TemplateChannelStyle{Class: "bg-purple-100 text-purple-700 border-purple-200", Icon: "bell"}
	default:
		return TemplateChannelStyle{Class: "bg-gray-100 text-gray-700 border-gray-200", Icon: "globe"}
	}
}

// TemplateDefinition describes the templates page: timestamp ids,
// appended on create, category and channel copied in on every save.
func TemplateDefinition(refs ReferenceLookup) Definition[Template] {
	def := Definition[Template]{
		Name:        CollectionTemplates,
		Insert:      Append,
		IDs:         TimestampIDs(),
		GetID:       func(t Template) ID { return t.ID },
		SetID:       func(t *Template, id ID) { t.ID = id },
		DisplayName: func(t Template) string { return t.TemplateName },
		Normalize: func(t Template) Template {
			t.TemplateName = strings.TrimSpace(t.TemplateName)
			t.Subject = strings.TrimSpace(t.Subject)
			t.CategoryID = ID(strings.TrimSpace(string(t.CategoryID)))
			t.ChannelID = ID(strings.TrimSpace(string(t.ChannelID)))
			t.Category, t.Channel = nil, nil
			if refs != nil {
				if c, ok := refs.Category(t.CategoryID); ok {
					t.Category = &c
				}
				if ch, ok := refs.Channel(t.ChannelID); ok {
					t.Channel = &ch
				}
			}
			return t
		},
		Stamp: func(t *Template, prev *Template, now time.Time) {
			if prev != nil {
				t.CreatedAt = prev.CreatedAt
				return
			}
			t.CreatedAt = now
		},
		Validate: validateTemplate,
		Search: func(t Template, q string) bool {
			return containsFold(q, t.TemplateName, t.Subject, t.Body)
		},
		Messages: Messages{
			Banner:        "Template created successfully",
			BannerTimeout: 5 * time.Second,
		},
	}

	categoryFacet := Facet[Template]{
		Key:   "categoryId",
		Label: "Kategori",
		Match: func(t Template, value string, _ time.Time) bool {
			return string(t.CategoryID) == value
		},
	}
	channelFacet := Facet[Template]{
		Key:   "channelId",
		Label: "Channel",
		Match: func(t Template, value string, _ time.Time) bool {
			return string(t.ChannelID) == value
		},
	}
	if refs != nil {
		categoryFacet.OptionsFunc = refs.CategoryOptions
		channelFacet.OptionsFunc = refs.ChannelOptions
	}
	def.Facets = []Facet[Template]{
		categoryFacet,
		channelFacet,
		presenceFacet("hasAttachment", "Lampiran", func(t Template) bool { return t.HasAttachment }),
		dateRangeFacet(func(t Template) *time.Time { return timePtr(t.CreatedAt) }),
	}
	return def
}

func validateTemplate(t Template, _ []Template) validation.Errors {
	return validation.Errors{
		"template_name": validation.Validate(t.TemplateName, validation.Required.Error("Nama template wajib diisi")),
		"category_id":   validation.Validate(string(t.CategoryID), validation.Required.Error("Kategori wajib dipilih")),
		"channel_id":    validation.Validate(string(t.ChannelID), validation.Required.Error("Channel wajib dipilih")),
	}
}
