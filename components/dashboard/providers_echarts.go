package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "240px"

// AnalyticsSummary holds the productivity figures shown by the analytics widget.
type AnalyticsSummary struct {
	Productivity   int       `json:"productivity"`
	FocusTime      string    `json:"focusTime"`
	CompletedTasks int       `json:"completedTasks"`
	WeeklyTrend    string    `json:"weeklyTrend"`
	Days           []string  `json:"days"`
	FocusHours     []float64 `json:"focusHours"`
}

// DemoAnalytics is the starter summary for new dashboards.
func DemoAnalytics() AnalyticsSummary {
	return AnalyticsSummary{
		Productivity:   85,
		FocusTime:      "6h 24m",
		CompletedTasks: 12,
		WeeklyTrend:    "+15%",
		Days:           []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		FocusHours:     []float64{5.5, 6.2, 7.1, 6.4, 5.8, 3.2, 2.5},
	}
}

// AnalyticsProvider renders the productivity summary plus a server-side focus chart.
type AnalyticsProvider struct {
	summary    func(ctx context.Context, viewer ViewerContext) (AnalyticsSummary, error)
	cache      *TTLCache
	theme      string
	assetsHost string
}

// AnalyticsProviderOption customizes provider behavior.
type AnalyticsProviderOption func(*AnalyticsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache *TTLCache) AnalyticsProviderOption {
	return func(p *AnalyticsProvider) {
		p.cache = cache
	}
}

// WithChartTheme sets the chart theme (defaults to Westeros).
func WithChartTheme(theme string) AnalyticsProviderOption {
	return func(p *AnalyticsProvider) {
		p.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from another CDN.
func WithChartAssetsHost(host string) AnalyticsProviderOption {
	return func(p *AnalyticsProvider) {
		p.assetsHost = host
	}
}

// WithAnalyticsSource replaces the demo summary.
func WithAnalyticsSource(fn func(ctx context.Context, viewer ViewerContext) (AnalyticsSummary, error)) AnalyticsProviderOption {
	return func(p *AnalyticsProvider) {
		if fn != nil {
			p.summary = fn
		}
	}
}

// NewAnalyticsProvider builds the analytics provider.
func NewAnalyticsProvider(opts ...AnalyticsProviderOption) *AnalyticsProvider {
	p := &AnalyticsProvider{
		summary: func(context.Context, ViewerContext) (AnalyticsSummary, error) {
			return DemoAnalytics(), nil
		},
		theme: types.ThemeWesteros,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch implements Provider.
func (p *AnalyticsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	summary, err := p.summary(ctx, meta.Viewer)
	if err != nil {
		return nil, err
	}
	if len(summary.Days) != len(summary.FocusHours) {
		return nil, fmt.Errorf("dashboard: analytics series has %d labels for %d values", len(summary.Days), len(summary.FocusHours))
	}
	chartType := strings.ToLower(stringValue(meta.Widget.Config["chart"], "line"))
	title := stringValue(meta.Widget.Title, "Focus hours")

	render := func() (string, error) {
		return p.render(chartType, title, summary)
	}
	key := fmt.Sprintf("chart:%s:%s:%s", meta.Widget.ID, chartType, configHash(map[string]any{
		"days":  summary.Days,
		"hours": summary.FocusHours,
		"title": title,
	}))
	html, err := p.cache.GetOrRender(key, render)
	if err != nil {
		return nil, err
	}
	return WidgetData{
		"productivity":   summary.Productivity,
		"focusTime":      summary.FocusTime,
		"completedTasks": summary.CompletedTasks,
		"weeklyTrend":    summary.WeeklyTrend,
		"chart_type":     chartType,
		"chart_html":     html,
	}, nil
}

func (p *AnalyticsProvider) render(chartType, title string, summary AnalyticsSummary) (string, error) {
	switch chartType {
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(p.globalChartOptions(title)...)
		line.SetXAxis(summary.Days)
		line.AddSeries("Focus", toLineData(summary.Days, summary.FocusHours))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(p.globalChartOptions(title)...)
		bar.SetXAxis(summary.Days)
		bar.AddSeries("Focus", toBarData(summary.Days, summary.FocusHours))
		return renderChart(bar)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", chartType)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *AnalyticsProvider) globalChartOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  p.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if p.assetsHost != "" {
		initOpts.AssetsHost = p.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toLineData(labels []string, values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Name: labels[i], Value: v}
	}
	return data
}

func toBarData(labels []string, values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Name: labels[i], Value: v}
	}
	return data
}
