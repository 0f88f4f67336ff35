package console

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-billing-console/pkg/api"
)

const defaultChartHeight = "320px"

// Chart kinds.
const (
	ChartBar  = "bar"
	ChartPie  = "pie"
	ChartLine = "line"
)

// ChartPoint is one labelled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartView is a rendered breakdown chart.
type ChartView struct {
	Title       string       `json:"title"`
	Kind        string       `json:"kind"`
	HTML        string       `json:"html"`
	Points      []ChartPoint `json:"points"`
	Source      string       `json:"source"`
	Approximate bool         `json:"approximate,omitempty"`
}

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// ChartRenderer turns breakdowns into go-echarts markup.
type ChartRenderer struct {
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// ChartRendererOption customizes the renderer.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{theme: types.ThemeWesteros}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render draws points as kind. Output is memoized on page, kind, theme and data.
func (r *ChartRenderer) Render(page, kind, title string, points []ChartPoint, viewer ViewerContext) (string, error) {
	theme := r.resolveTheme(viewer)
	render := func() (string, error) {
		return r.render(strings.ToLower(kind), title, points, theme)
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", page, kind, theme, dataHash(points))
	return r.cache.GetOrRender(key, render)
}

// Invalidate drops cached charts of page when the cache supports purging.
func (r *ChartRenderer) Invalidate(page string) {
	if r == nil || page == "" {
		return
	}
	if purger, ok := r.cache.(interface{ Purge(prefix string) }); ok {
		purger.Purge(page + ":")
	}
}

func (r *ChartRenderer) render(kind, title string, points []ChartPoint, theme string) (string, error) {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Label
	}
	switch kind {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(title, theme)...)
		bar.SetXAxis(labels)
		data := make([]opts.BarData, len(points))
		for i, p := range points {
			data[i] = opts.BarData{Name: p.Label, Value: p.Value}
		}
		bar.AddSeries(title, data)
		return renderChart(bar)
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(title, theme)...)
		line.SetXAxis(labels)
		data := make([]opts.LineData, len(points))
		for i, p := range points {
			data[i] = opts.LineData{Name: p.Label, Value: p.Value}
		}
		line.AddSeries(title, data)
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(title, theme)...)
		data := make([]opts.PieData, len(points))
		for i, p := range points {
			data[i] = opts.PieData{Name: p.Label, Value: p.Value}
		}
		pie.AddSeries(title, data)
		return renderChart(pie)
	default:
		return "", fmt.Errorf("unsupported chart type: %s", kind)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(title, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (r *ChartRenderer) resolveTheme(viewer ViewerContext) string {
	if r.themeResolver != nil {
		if theme := r.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	if r.theme != "" {
		return r.theme
	}
	return types.ThemeWesteros
}

// ChartSpec declares a breakdown chart for a page.
type ChartSpec[T any] struct {
	Title string
	Kind  string
	// Key names the server breakdown map in meta.statistics.
	Key   string
	Group func(T) string
	// Value weights each item; nil counts items.
	Value func(T) float64
}

// Points prefers the server breakdown and otherwise groups the visible page.
func (c ChartSpec[T]) Points(items []T, meta *api.Meta) ([]ChartPoint, string, bool) {
	if meta != nil && c.Key != "" {
		if breakdown, ok := meta.Statistics.Breakdown(c.Key); ok {
			return sortedPoints(breakdown), "server", false
		}
	}
	grouped := map[string]float64{}
	if c.Group != nil {
		for _, item := range items {
			label := strings.TrimSpace(c.Group(item))
			if label == "" {
				label = "unknown"
			}
			if c.Value != nil {
				grouped[label] += c.Value(item)
			} else {
				grouped[label]++
			}
		}
	}
	return sortedPoints(grouped), "page", meta.Paginated(len(items))
}

// Render computes points and draws them.
func (c ChartSpec[T]) Render(renderer *ChartRenderer, page string, items []T, meta *api.Meta, viewer ViewerContext) (ChartView, error) {
	points, source, approximate := c.Points(items, meta)
	kind := c.Kind
	if kind == "" {
		kind = ChartBar
	}
	view := ChartView{Title: c.Title, Kind: kind, Points: points, Source: source, Approximate: approximate}
	if len(points) == 0 {
		return view, nil
	}
	html, err := renderer.Render(page, kind, c.Title, points, viewer)
	if err != nil {
		return ChartView{}, err
	}
	view.HTML = html
	return view, nil
}

func sortedPoints(values map[string]float64) []ChartPoint {
	points := make([]ChartPoint, 0, len(values))
	for label, value := range values {
		points = append(points, ChartPoint{Label: label, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}
