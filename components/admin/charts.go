package admin

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

// ChartPoint is one labelled value.
type ChartPoint struct {
	Label string
	Value float64
}

// ChartRenderer renders server-side echarts markup for the overview page.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost points the echarts script tag at another host.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{theme: types.ThemeWesteros}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Bar renders a single-series bar chart.
func (r *ChartRenderer) Bar(title, series string, points []ChartPoint) (string, error) {
	if len(points) == 0 {
		return "", nil
	}
	render := func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(title)...)
		labels := make([]string, len(points))
		data := make([]opts.BarData, len(points))
		for i, p := range points {
			labels[i] = p.Label
			data[i] = opts.BarData{Name: p.Label, Value: p.Value}
		}
		bar.SetXAxis(labels)
		bar.AddSeries(series, data)
		return renderChart(bar)
	}
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender("chart:"+contentHash(chartKey(title, series, points)), render)
}

func chartKey(title, series string, points []ChartPoint) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('|')
	b.WriteString(series)
	for _, p := range points {
		fmt.Fprintf(&b, "|%s=%g", p.Label, p.Value)
	}
	return b.String()
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("admin: render chart: %w", err)
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
