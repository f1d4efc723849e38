// Package render writes comparison charts and database reports to disk.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/syncscope/syncscope/compare"
	"github.com/syncscope/syncscope/pkg/progress"
	"github.com/syncscope/syncscope/sample"
)

const stampLayout = "20060102_150405"

// Renderer writes HTML charts and text reports into a single output
// directory, creating it on first use.
type Renderer struct {
	outDir string
}

func New(outDir string) *Renderer {
	return &Renderer{outDir: outDir}
}

// Comparison renders the selected versions' memory and CPU series as two
// stacked line charts on one page and returns the written file's path.
func (r *Renderer) Comparison(set compare.SeriesSet, dbName string) (string, error) {
	mem := newLine("Memory (RSS) by Slot", "Slot Number", "RSS (MB)", true)
	cpu := newLine("CPU % by Slot", "Slot Number", "CPU (%)", true)

	for _, version := range set.Versions {
		mem.AddSeries("Mem - "+version, lineData(set.Memory[version]))
		cpu.AddSeries("CPU - "+version, lineData(set.CPU[version]))
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("dbsync_%s - Memory & CPU Comparison", dbName)
	page.AddCharts(mem, cpu)

	name := fmt.Sprintf("comparison_%s_%s.html", dbName, time.Now().Format(stampLayout))

	return r.writePage(page, name)
}

// EpochStats renders one chart per per-epoch statistic on a single page.
func (r *Renderer) EpochStats(stats []progress.EpochStat, dbName string) (string, error) {
	panels := []struct {
		title string
		yName string
		value func(progress.EpochStat) float64
	}{
		{"Sync Duration (sec)", "Seconds", func(s progress.EpochStat) float64 { return s.SyncSecs }},
		{"Transaction Count", "N [Int]", func(s progress.EpochStat) float64 { return float64(s.TxCount) }},
		{"Sum of TX Size", "ADA", func(s progress.EpochStat) float64 { return float64(s.SumTxSize) }},
		{"Reward Count", "ADA", func(s progress.EpochStat) float64 { return float64(s.RewardCount) }},
		{"Stake Count", "ADA", func(s progress.EpochStat) float64 { return float64(s.StakeCount) }},
	}

	page := components.NewPage()
	page.PageTitle = "Per-Epoch Stats: " + dbName

	for _, panel := range panels {
		data := make([]opts.LineData, 0, len(stats))
		for _, s := range stats {
			data = append(data, opts.LineData{Value: []interface{}{s.EpochNo, panel.value(s)}})
		}

		line := newLine(panel.title, "Epoch Number", panel.yName, false)
		line.AddSeries(panel.title, data)
		page.AddCharts(line)
	}

	name := fmt.Sprintf("%s_epoch_stats_%s.html", dbName, time.Now().Format(stampLayout))

	return r.writePage(page, name)
}

// SizeReport writes the database total and per-table sizes as plain text.
func (r *Renderer) SizeReport(report progress.SizeReport, dbName string) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("%s_db_size_report_%s.txt", dbName, time.Now().Format(stampLayout))
	path := filepath.Join(r.outDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Database: %s\n", dbName)
	fmt.Fprintf(f, "Total size: %s\n\n", report.Total)
	fmt.Fprintln(f, "Table sizes:")
	for _, t := range report.Tables {
		fmt.Fprintf(f, "  %-40s → %s\n", t.Name, t.Size)
	}

	return path, nil
}

func (r *Renderer) writePage(page *components.Page, name string) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(r.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("failed to render charts: %w", err)
	}

	return path, nil
}

// newLine builds a line chart with numeric axes. Each series carries its own
// x values, so versions sampled at different keys never share an axis grid.
func newLine(title, xName, yName string, legend bool) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(legend)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
	)

	return line
}

func lineData(points []sample.Point) []opts.LineData {
	data := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		data = append(data, opts.LineData{Value: []interface{}{p.Key, p.Value}})
	}

	return data
}
