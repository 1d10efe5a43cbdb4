package admin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Fixed dashboard counters with no backing collection.
const (
	ActiveUsersTotal     = 250
	ActiveCustomersTotal = 15000

	recentActivityLimit = 5
	recentPerCollection = 2
)

// Totals are the dashboard counters.
type Totals struct {
	Categories     int `json:"categories"`
	Channels       int `json:"channels"`
	Templates      int `json:"templates"`
	PaymentMethods int `json:"payment_methods"`
	Users          int `json:"users"`
	Orders         int `json:"orders"`
	UserActive     int `json:"user_active"`
	CustomerActive int `json:"customer_active"`
}

// Activity is one entry of the recent activity list.
type Activity struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// ChannelCount is the number of templates bound to one channel.
type ChannelCount struct {
	ChannelID ID     `json:"channel_id"`
	Name      string `json:"name"`
	Templates int    `json:"templates"`
}

// Overview is the dashboard landing page model.
type Overview struct {
	Totals              Totals         `json:"totals"`
	RecentActivity      []Activity     `json:"recent_activity"`
	ChannelDistribution []ChannelCount `json:"channel_distribution"`
	ChartHTML           string         `json:"-"`
	LastUpdated         time.Time      `json:"last_updated"`
}

// Overview builds the dashboard model from the current collections.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	if err := ctx.Err(); err != nil {
		return Overview{}, err
	}
	now := s.clock.Now()
	categories := s.categories.All()
	channels := s.channels.All()
	templates := s.templates.All()

	out := Overview{
		Totals: Totals{
			Categories:     len(categories),
			Channels:       len(channels),
			Templates:      len(templates),
			PaymentMethods: s.payments.Len(),
			Users:          s.users.Len(),
			Orders:         s.orders.Len(),
			UserActive:     ActiveUsersTotal,
			CustomerActive: ActiveCustomersTotal,
		},
		RecentActivity:      recentActivity(templates, categories, now),
		ChannelDistribution: channelDistribution(channels, templates),
		LastUpdated:         now,
	}

	points := make([]ChartPoint, 0, len(out.ChannelDistribution))
	for _, c := range out.ChannelDistribution {
		points = append(points, ChartPoint{Label: c.Name, Value: float64(c.Templates)})
	}
	html, err := s.charts.Bar("Distribusi Template per Channel", "Template", points)
	if err != nil {
		s.logger.Warn("admin: overview chart unavailable", zap.Error(err))
	}
	out.ChartHTML = html
	return out, nil
}

func recentActivity(templates []Template, categories []Category, now time.Time) []Activity {
	out := make([]Activity, 0, recentActivityLimit)
	for i, t := range templates {
		if i == recentPerCollection {
			break
		}
		created := t.CreatedAt
		if created.IsZero() {
			created = now
		}
		out = append(out, Activity{
			Kind:    "template",
			Message: fmt.Sprintf("Template %q dibuat", t.TemplateName),
			Time:    FormatDateTime(created),
		})
	}
	for i, c := range categories {
		if i == recentPerCollection {
			break
		}
		created := now
		if c.CreatedAt != nil {
			created = *c.CreatedAt
		}
		out = append(out, Activity{
			Kind:    "category",
			Message: fmt.Sprintf("Kategori %q dibuat", c.Name),
			Time:    FormatDateTime(created),
		})
	}
	if len(out) > recentActivityLimit {
		out = out[:recentActivityLimit]
	}
	return out
}

func channelDistribution(channels []Channel, templates []Template) []ChannelCount {
	counts := make(map[ID]int, len(channels))
	for _, t := range templates {
		counts[t.ChannelID]++
	}
	out := make([]ChannelCount, 0, len(channels))
	for _, c := range channels {
		out = append(out, ChannelCount{ChannelID: c.ID, Name: c.Name, Templates: counts[c.ID]})
	}
	return out
}
