package admin

import (
	"strings"
	"time"
)

// FacetAll is the default value of every facet.
const FacetAll = "all"

// Filter is the list state of a page: free text plus facet selections.
type Filter struct {
	Search string            `json:"search,omitempty"`
	Facets map[string]string `json:"facets,omitempty"`
}

// Value returns the selection for a facet, defaulting to FacetAll.
func (f Filter) Value(key string) string {
	if f.Facets == nil {
		return FacetAll
	}
	v := strings.TrimSpace(f.Facets[key])
	if v == "" {
		return FacetAll
	}
	return v
}

// With returns a copy of the filter with one facet set.
func (f Filter) With(key, value string) Filter {
	out := Filter{Search: f.Search, Facets: make(map[string]string, len(f.Facets)+1)}
	for k, v := range f.Facets {
		out.Facets[k] = v
	}
	out.Facets[key] = value
	return out
}

// Cleared resets every facet to FacetAll and keeps the search text.
func (f Filter) Cleared() Filter {
	return Filter{Search: f.Search}
}

// FacetOption is one selectable bucket of a facet.
type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Facet is one independent filter dimension.
type Facet[T any] struct {
	Key         string
	Label       string
	Options     []FacetOption
	// OptionsFunc, when set, supplies options computed at render time.
	OptionsFunc func() []FacetOption
	Match       func(record T, value string, now time.Time) bool
}

// FacetInfo is the render-ready shape of a facet.
type FacetInfo struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Options  []FacetOption `json:"options"`
	Selected string        `json:"selected"`
}

// SearchFunc reports whether a record matches the search text.
type SearchFunc[T any] func(record T, query string) bool

// ApplyFilter returns the records that match the search text and every
// facet, preserving input order. It does not modify records.
func ApplyFilter[T any](records []T, search SearchFunc[T], facets []Facet[T], filter Filter, now time.Time) []T {
	out := make([]T, 0, len(records))
	for _, record := range records {
		if filter.Search != "" && search != nil && !search(record, filter.Search) {
			continue
		}
		if !matchFacets(record, facets, filter, now) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchFacets[T any](record T, facets []Facet[T], filter Filter, now time.Time) bool {
	for _, facet := range facets {
		value := filter.Value(facet.Key)
		if value == FacetAll || facet.Match == nil {
			continue
		}
		if !facet.Match(record, value, now) {
			return false
		}
	}
	return true
}

// ActiveFacetCount counts facets whose selection is not FacetAll.
func ActiveFacetCount[T any](facets []Facet[T], filter Filter) int {
	count := 0
	for _, facet := range facets {
		if filter.Value(facet.Key) != FacetAll {
			count++
		}
	}
	return count
}

// DescribeFacets converts facets into FacetInfo with the current selection.
func DescribeFacets[T any](facets []Facet[T], filter Filter) []FacetInfo {
	out := make([]FacetInfo, 0, len(facets))
	for _, facet := range facets {
		choices := facet.Options
		if facet.OptionsFunc != nil {
			choices = facet.OptionsFunc()
		}
		options := make([]FacetOption, 0, len(choices)+1)
		options = append(options, FacetOption{Value: FacetAll, Label: "Semua"})
		options = append(options, choices...)
		out = append(out, FacetInfo{
			Key:      facet.Key,
			Label:    facet.Label,
			Options:  options,
			Selected: filter.Value(facet.Key),
		})
	}
	return out
}

// containsFold reports whether any field contains query, ignoring case.
func containsFold(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
