package admin

import (
	"net/url"
	"strings"
)

// Form state keys shared by every page.
const (
	ParamSearch        = "q"
	ParamCreate        = "create"
	ParamCreatePreview = "createPreview"
	ParamEdit          = "edit"
	ParamEditPreview   = "editPreview"
	ParamPreview       = "preview"
	ParamHighlight     = "highlight"
	ParamAction        = "_action"
	ParamID            = "_id"

	// facetParamPrefix keeps facet keys apart from record fields.
	facetParamPrefix = "filter_"
)

// FacetParam returns the query parameter carrying a facet selection.
func FacetParam(key string) string { return facetParamPrefix + key }

// FilterFromValues reads the search text and the facets named by keys.
func FilterFromValues(values url.Values, keys []string) Filter {
	filter := Filter{Search: strings.TrimSpace(values.Get(ParamSearch))}
	for _, key := range keys {
		if v := strings.TrimSpace(values.Get(FacetParam(key))); v != "" && v != FacetAll {
			filter = filter.With(key, v)
		}
	}
	return filter
}

// FilterValues encodes a filter back into query parameters.
func FilterValues(filter Filter) url.Values {
	values := url.Values{}
	if filter.Search != "" {
		values.Set(ParamSearch, filter.Search)
	}
	for key, v := range filter.Facets {
		if v != "" && v != FacetAll {
			values.Set(FacetParam(key), v)
		}
	}
	return values
}

func formBool(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// DecodeCategory reads a category form.
func DecodeCategory(values url.Values) Category {
	return Category{
		Name:        values.Get("name"),
		Description: values.Get("description"),
	}
}

// DecodeChannel reads a channel form.
func DecodeChannel(values url.Values) Channel {
	return Channel{
		Name:        values.Get("name"),
		Description: values.Get("description"),
	}
}

// DecodeTemplate reads a template form.
func DecodeTemplate(values url.Values) Template {
	return Template{
		TemplateName:  values.Get("template_name"),
		Subject:       values.Get("subject"),
		Body:          values.Get("body"),
		CategoryID:    ParseID(values.Get("category_id")),
		ChannelID:     ParseID(values.Get("channel_id")),
		HasAttachment: formBool(values, "has_attachment"),
	}
}

// DecodeUser reads a user form.
func DecodeUser(values url.Values) User {
	return User{
		Name:  values.Get("name"),
		Email: values.Get("email"),
		Phone: values.Get("phone"),
	}
}

// DecodePayment reads a payment method form.
func DecodePayment(values url.Values) PaymentMethod {
	return PaymentMethod{
		Name:     values.Get("name"),
		Provider: values.Get("provider"),
		ImageURL: values.Get("image_url"),
	}
}

// FormAction returns the submitted action. Submit buttons come after the
// hidden default in the form, so the last value wins.
func FormAction(values url.Values) string {
	actions := values[ParamAction]
	if len(actions) == 0 {
		return ""
	}
	return strings.TrimSpace(actions[len(actions)-1])
}

// FilterFromQuery reads the search text and every facet parameter present.
func FilterFromQuery(values url.Values) Filter {
	filter := Filter{Search: strings.TrimSpace(values.Get(ParamSearch))}
	for param := range values {
		key, ok := strings.CutPrefix(param, facetParamPrefix)
		if !ok || key == "" {
			continue
		}
		if v := strings.TrimSpace(values.Get(param)); v != "" && v != FacetAll {
			filter = filter.With(key, v)
		}
	}
	return filter
}
