package admin

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Date range buckets shared by every page that has created_at.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

var dateRangeOptions = []FacetOption{
	{Value: RangeToday, Label: "Hari ini"},
	{Value: RangeWeek, Label: "7 hari terakhir"},
	{Value: RangeMonth, Label: "30 hari terakhir"},
	{Value: RangeYear, Label: "1 tahun terakhir"},
}

var presenceOptions = []FacetOption{
	{Value: "with", Label: "Ada"},
	{Value: "without", Label: "Tidak ada"},
}

// DaysSince returns the whole number of days elapsed, rounded down.
func DaysSince(created, now time.Time) int {
	return int(math.Floor(now.Sub(created).Hours() / 24))
}

// InDateRange applies the bucket rules: today is zero elapsed days,
// then up to 7, 30 and 365 days. A missing timestamp never matches.
func InDateRange(created *time.Time, bucket string, now time.Time) bool {
	if bucket == FacetAll {
		return true
	}
	if created == nil || created.IsZero() {
		return false
	}
	days := DaysSince(*created, now)
	switch bucket {
	case RangeToday:
		return days == 0
	case RangeWeek:
		return days <= 7
	case RangeMonth:
		return days <= 30
	case RangeYear:
		return days <= 365
	default:
		return true
	}
}

func dateRangeFacet[T any](created func(T) *time.Time) Facet[T] {
	return Facet[T]{
		Key:     "dateRange",
		Label:   "Tanggal dibuat",
		Options: dateRangeOptions,
		Match: func(record T, value string, now time.Time) bool {
			return InDateRange(created(record), value, now)
		},
	}
}

func presenceFacet[T any](key, label string, present func(T) bool) Facet[T] {
	return Facet[T]{
		Key:     key,
		Label:   label,
		Options: presenceOptions,
		Match: func(record T, value string, _ time.Time) bool {
			switch value {
			case "with":
				return present(record)
			case "without":
				return !present(record)
			default:
				return true
			}
		},
	}
}

func hasDescriptionFacet[T any](description func(T) string) Facet[T] {
	return presenceFacet("hasDescription", "Deskripsi", func(record T) bool {
		return strings.TrimSpace(description(record)) != ""
	})
}

// Name length buckets.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// NameLengthBucket classifies a name as short (<=10), medium (11-20) or long.
func NameLengthBucket(name string) string {
	n := utf8.RuneCountInString(name)
	switch {
	case n <= 10:
		return LengthShort
	case n <= 20:
		return LengthMedium
	default:
		return LengthLong
	}
}

func nameLengthFacet[T any](name func(T) string) Facet[T] {
	return Facet[T]{
		Key:   "nameLength",
		Label: "Panjang nama",
		Options: []FacetOption{
			{Value: LengthShort, Label: "Pendek (≤10)"},
			{Value: LengthMedium, Label: "Sedang (11-20)"},
			{Value: LengthLong, Label: "Panjang (>20)"},
		},
		Match: func(record T, value string, _ time.Time) bool {
			return NameLengthBucket(name(record)) == value
		},
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
