package admin

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInDateRange(t *testing.T) {
	now := testNow
	cases := []struct {
		name    string
		created *time.Time
		bucket  string
		want    bool
	}{
		{"all matches nil", nil, FacetAll, true},
		{"nil never matches", nil, RangeYear, false},
		{"same day is today", timePtr(now.Add(-2 * time.Hour)), RangeToday, true},
		{"yesterday is not today", timePtr(now.Add(-25 * time.Hour)), RangeToday, false},
		{"seven days is within week", timePtr(now.AddDate(0, 0, -7)), RangeWeek, true},
		{"eight days is outside week", timePtr(now.AddDate(0, 0, -8)), RangeWeek, false},
		{"thirty days is within month", timePtr(now.AddDate(0, 0, -30)), RangeMonth, true},
		{"366 days is outside year", timePtr(now.AddDate(0, 0, -366)), RangeYear, false},
		{"unknown bucket matches", timePtr(now), "decade", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InDateRange(tc.created, tc.bucket, now); got != tc.want {
				t.Fatalf("InDateRange(%v, %q) = %v, want %v", tc.created, tc.bucket, got, tc.want)
			}
		})
	}
}

func TestNameLengthBucket(t *testing.T) {
	assert.Equal(t, LengthShort, NameLengthBucket("Transaksi"))
	assert.Equal(t, LengthShort, NameLengthBucket("0123456789"))
	assert.Equal(t, LengthMedium, NameLengthBucket("Keamanan Akun"))
	assert.Equal(t, LengthLong, NameLengthBucket("Pengumuman Sistem dan Pemeliharaan"))
}

func TestFilterValueDefaultsToAll(t *testing.T) {
	var f Filter
	assert.Equal(t, FacetAll, f.Value("status"))

	g := f.With("status", "active")
	assert.Equal(t, "active", g.Value("status"))
	assert.Equal(t, FacetAll, f.Value("status"), "With must not mutate the receiver")

	g.Search = "andi"
	cleared := g.Cleared()
	assert.Equal(t, "andi", cleared.Search)
	assert.Equal(t, FacetAll, cleared.Value("status"))
}

func TestSeedFacets(t *testing.T) {
	service := newTestService(t, newFakeClock(testNow))

	users := service.Users()
	assert.Len(t, users.List(Filter{}.With("status", "active")), 3)
	assert.Len(t, users.List(Filter{}.With("status", "inactive")), 2)
	assert.Len(t, users.List(Filter{}.With("domain", "other")), 1)
	assert.Len(t, users.List(Filter{}.With("phonePrefix", "local")), 2)
	assert.Len(t, users.List(Filter{}.With("phonePrefix", "international")), 1)

	both := Filter{}.With("status", "active").With("phonePrefix", "+62")
	got := users.List(both)
	require.Len(t, got, 2)
	assert.Equal(t, 2, users.ActiveFacets(both))

	categories := service.Categories()
	assert.Len(t, categories.List(Filter{}.With("hasDescription", "without")), 1)
	assert.Len(t, categories.List(Filter{}.With("nameLength", LengthLong)), 1)
	assert.Len(t, categories.List(Filter{}.With("dateRange", RangeMonth)), 2)

	templates := service.Templates()
	assert.Len(t, templates.List(Filter{}.With("hasAttachment", "with")), 1)
	assert.Len(t, templates.List(Filter{}.With("channelId", "2")), 1)
	assert.Len(t, templates.List(Filter{Search: "otp"}), 1)

	payments := service.Payments()
	assert.Len(t, payments.List(Filter{}.With("provider", "sparkpay")), 2)
	assert.Len(t, payments.List(Filter{}.With("hasImage", "without")), 1)
}

func TestSearchPreservesOrder(t *testing.T) {
	service := newTestService(t, newFakeClock(testNow))

	got := service.Users().List(Filter{Search: "GMAIL"})
	require.Len(t, got, 2)
	assert.Equal(t, "Andi Pratama", got[0].Name)
	assert.Equal(t, "Dewi Lestari", got[1].Name)
	assert.Empty(t, service.Users().List(Filter{Search: "zzz"}))
}

func TestDescribeFacetsPrependsAll(t *testing.T) {
	c := NewCollection(UserDefinition(), CollectionOptions{})
	facets := c.DescribeFacets(Filter{}.With("domain", "yahoo"))
	require.Len(t, facets, 3)

	for _, facet := range facets {
		require.NotEmpty(t, facet.Options)
		assert.Equal(t, FacetOption{Value: FacetAll, Label: "Semua"}, facet.Options[0])
	}
	assert.Equal(t, "yahoo", facets[1].Selected)
	assert.Equal(t, FacetAll, facets[0].Selected)
}

func TestFilterFromValues(t *testing.T) {
	values := url.Values{}
	values.Set(ParamSearch, "  andi ")
	values.Set(FacetParam("status"), "active")
	values.Set(FacetParam("domain"), FacetAll)
	values.Set(FacetParam("ignored"), "x")

	filter := FilterFromValues(values, []string{"status", "domain"})
	assert.Equal(t, "andi", filter.Search)
	assert.Equal(t, map[string]string{"status": "active"}, filter.Facets)

	all := FilterFromQuery(values)
	assert.Equal(t, "x", all.Value("ignored"))
	assert.Equal(t, FacetAll, all.Value("domain"))

	round := FilterValues(filter)
	assert.Equal(t, "andi", round.Get(ParamSearch))
	assert.Equal(t, "active", round.Get("filter_status"))
}

func TestFormAction(t *testing.T) {
	values := url.Values{ParamAction: {"save", " preview "}}
	assert.Equal(t, "preview", FormAction(values))
	assert.Equal(t, "", FormAction(url.Values{}))
}

func TestDecodeTemplateForm(t *testing.T) {
	values := url.Values{
		"template_name":  {"Halo"},
		"category_id":    {" 3f2b "},
		"channel_id":     {"1"},
		"has_attachment": {"on"},
	}
	tpl := DecodeTemplate(values)
	assert.Equal(t, ID("3f2b"), tpl.CategoryID)
	assert.Equal(t, ID("1"), tpl.ChannelID)
	assert.True(t, tpl.HasAttachment)
	assert.False(t, DecodeTemplate(url.Values{}).HasAttachment)
}
