package admin

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

// UserActive reports the activity heuristic: gmail and kapten
// addresses count as active.
func UserActive(u User) bool {
	return strings.Contains(u.Email, "gmail") || strings.Contains(u.Email, "kapten")
}

// EmailDomain returns the part after '@', or "" when there is none.
func EmailDomain(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return domain
}

// PhonePrefix buckets a phone number as +62, local (leading 0) or international.
func PhonePrefix(phone string) string {
	switch {
	case strings.HasPrefix(phone, "+62"):
		return "+62"
	case strings.HasPrefix(phone, "0"):
		return "local"
	default:
		return "international"
	}
}

var knownDomains = []string{"gmail", "yahoo", "kapten"}

// UserDefinition describes the users page: timestamp ids, prepended on
// create, unique emails.
func UserDefinition() Definition[User] {
	return Definition[User]{
		Name:        CollectionUsers,
		Insert:      Prepend,
		IDs:         TimestampIDs(),
		GetID:       func(u User) ID { return u.ID },
		SetID:       func(u *User, id ID) { u.ID = id },
		DisplayName: func(u User) string { return u.Name },
		Normalize: func(u User) User {
			u.Name = strings.TrimSpace(u.Name)
			u.Email = strings.TrimSpace(u.Email)
			u.Phone = strings.TrimSpace(u.Phone)
			return u
		},
		Stamp: func(u *User, prev *User, now time.Time) {
			if prev != nil {
				u.CreatedAt = prev.CreatedAt
				return
			}
			u.CreatedAt = timePtr(now)
		},
		Validate: validateUser,
		Search: func(u User, q string) bool {
			return containsFold(q, u.Name, u.Email) || strings.Contains(u.Phone, q)
		},
		Facets: []Facet[User]{
			{
				Key:   "status",
				Label: "Status",
				Options: []FacetOption{
					{Value: "active", Label: "Aktif"},
					{Value: "inactive", Label: "Tidak aktif"},
				},
				Match: func(u User, value string, _ time.Time) bool {
					switch value {
					case "active":
						return UserActive(u)
					case "inactive":
						return !UserActive(u)
					default:
						return false
					}
				},
			},
			{
				Key:   "domain",
				Label: "Domain email",
				Options: []FacetOption{
					{Value: "gmail", Label: "Gmail"},
					{Value: "yahoo", Label: "Yahoo"},
					{Value: "kapten", Label: "Kapten"},
					{Value: "other", Label: "Lainnya"},
				},
				Match: func(u User, value string, _ time.Time) bool {
					domain := EmailDomain(u.Email)
					if value == "other" {
						for _, known := range knownDomains {
							if strings.Contains(domain, known) {
								return false
							}
						}
						return true
					}
					return domain != "" && strings.Contains(domain, value)
				},
			},
			{
				Key:   "phonePrefix",
				Label: "Prefix telepon",
				Options: []FacetOption{
					{Value: "+62", Label: "+62"},
					{Value: "local", Label: "Lokal (0)"},
					{Value: "international", Label: "Internasional"},
				},
				Match: func(u User, value string, _ time.Time) bool {
					return PhonePrefix(u.Phone) == value
				},
			},
		},
		Messages: Messages{
			Banner:        "User berhasil dibuat",
			BannerTimeout: 5 * time.Second,
		},
	}
}

func validateUser(u User, others []User) validation.Errors {
	errs := validation.Errors{
		"name": validation.Validate(u.Name,
			validation.Required.Error("Nama wajib diisi"),
			validation.RuneLength(2, 0).Error("Nama minimal 2 karakter"),
		),
		"email": validation.Validate(u.Email,
			validation.Required.Error("Email wajib diisi"),
			validation.Match(emailPattern).Error("Format email tidak valid"),
		),
		"phone": validation.Validate(u.Phone,
			validation.Required.Error("Nomor telepon wajib diisi"),
			validation.Match(phonePattern).Error("Format nomor telepon tidak valid"),
		),
	}
	if u.Email != "" {
		for _, other := range others {
			if sameFold(other.Email, u.Email) {
				errs["email"] = duplicateError("Email sudah digunakan")
				break
			}
		}
	}
	return errs
}
