package admin

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PlaceholderImageBase prefixes the generated image url of payment
// methods created without one.
const PlaceholderImageBase = "https://via.placeholder.com/150x100?text="

// HasCustomImage reports whether the image url is not a generated placeholder.
func HasCustomImage(p PaymentMethod) bool {
	return !strings.Contains(p.ImageURL, "placeholder")
}

// ProviderBadgeClass returns the badge styling for a provider.
func ProviderBadgeClass(provider string) string {
	switch strings.ToLower(provider) {
	case "sparkpay":
		return "bg-blue-100 text-blue-700 border-blue-200"
	case "winpay":
		return "bg-green-100 text-green-700 border-green-200"
	case "mitra":
		return "bg-purple-100 text-purple-700 border-purple-200"
	default:
		return "bg-gray-100 text-gray-700 border-gray-200"
	}
}

// PaymentDefinition describes the payment methods page: timestamp ids,
// appended on create, updated_at set on every edit.
func PaymentDefinition() Definition[PaymentMethod] {
	return Definition[PaymentMethod]{
		Name:        CollectionPayments,
		Insert:      Append,
		IDs:         TimestampIDs(),
		GetID:       func(p PaymentMethod) ID { return p.ID },
		SetID:       func(p *PaymentMethod, id ID) { p.ID = id },
		DisplayName: func(p PaymentMethod) string { return p.Name },
		Normalize: func(p PaymentMethod) PaymentMethod {
			p.Name = strings.TrimSpace(p.Name)
			p.Provider = strings.TrimSpace(p.Provider)
			p.ImageURL = strings.TrimSpace(p.ImageURL)
			return p
		},
		Stamp: func(p *PaymentMethod, prev *PaymentMethod, now time.Time) {
			if prev != nil {
				p.CreatedAt = prev.CreatedAt
				p.UpdatedAt = &now
				return
			}
			if p.ImageURL == "" {
				p.ImageURL = PlaceholderImageBase + p.Name
			}
			p.CreatedAt = now
			p.UpdatedAt = nil
		},
		Validate: validatePayment,
		Search: func(p PaymentMethod, q string) bool {
			return containsFold(q, p.Name, p.Provider)
		},
		Facets: []Facet[PaymentMethod]{
			{
				Key:   "provider",
				Label: "Provider",
				Options: []FacetOption{
					{Value: "sparkpay", Label: "SparkPay"},
					{Value: "winpay", Label: "WinPay"},
					{Value: "mitra", Label: "Mitra"},
				},
				Match: func(p PaymentMethod, value string, _ time.Time) bool {
					return strings.ToLower(p.Provider) == value
				},
			},
			dateRangeFacet(func(p PaymentMethod) *time.Time { return timePtr(p.CreatedAt) }),
			presenceFacet("hasImage", "Gambar", HasCustomImage),
		},
		Messages: Messages{
			Banner:        "Berhasil create metode pembayaran",
			BannerTimeout: 5 * time.Second,
		},
	}
}

func validatePayment(p PaymentMethod, _ []PaymentMethod) validation.Errors {
	return validation.Errors{
		"name":     validation.Validate(p.Name, validation.Required.Error("Nama metode pembayaran wajib diisi")),
		"provider": validation.Validate(p.Provider, validation.Required.Error("Provider wajib diisi")),
	}
}
