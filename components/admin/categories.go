package admin

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CategoryDefinition describes the categories page: UUID ids, appended
// on create, 4 second success banner.
func CategoryDefinition() Definition[Category] {
	return Definition[Category]{
		Name:        CollectionCategories,
		Insert:      Append,
		IDs:         UUIDs(),
		GetID:       func(c Category) ID { return c.ID },
		SetID:       func(c *Category, id ID) { c.ID = id },
		DisplayName: func(c Category) string { return c.Name },
		Normalize: func(c Category) Category {
			c.Name = strings.TrimSpace(c.Name)
			c.Description = strings.TrimSpace(c.Description)
			return c
		},
		Stamp: func(c *Category, prev *Category, now time.Time) {
			if prev != nil {
				c.CreatedAt = prev.CreatedAt
				return
			}
			c.CreatedAt = timePtr(now)
		},
		Validate: validateCategory,
		Search: func(c Category, q string) bool {
			return containsFold(q, c.Name, c.Description)
		},
		Facets: []Facet[Category]{
			hasDescriptionFacet(func(c Category) string { return c.Description }),
			dateRangeFacet(func(c Category) *time.Time { return c.CreatedAt }),
			nameLengthFacet(func(c Category) string { return c.Name }),
		},
		Messages: Messages{
			Banner:        "Categories created successfully",
			BannerTimeout: 4 * time.Second,
		},
	}
}

func validateCategory(c Category, _ []Category) validation.Errors {
	return validation.Errors{
		"name": validation.Validate(c.Name, validation.Required.Error("Nama kategori wajib diisi")),
	}
}
