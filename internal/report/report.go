// Package report renders the analysis results as a static HTML report.
package report

import (
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/geoborder/borderlens/internal/model"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head><title>Border Analysis Report</title></head>
<body>
<h1>Economic-Border Integration Report</h1>

<h2>Summary</h2>
<ul>
  <li>Border pairs analyzed: {{.Result.TotalBorderPairs}}</li>
  <li>Average border length: {{printf "%.1f" .Result.AverageBorderLength}} km</li>
</ul>

<h2>Correlations with border length</h2>
{{if .Correlations}}
<table border="1">
  <tr><th>Ratio column</th><th>Pearson r</th></tr>
  {{range .Correlations}}
  <tr><td>{{.Column}}</td><td>{{printf "%.3f" .R}}</td></tr>
  {{end}}
</table>
{{else}}
<p>No defined correlations.</p>
{{end}}

<h2>Key insights</h2>
{{if .Result.KeyInsights}}
<ul>
  {{range .Result.KeyInsights}}<li>{{.}}</li>{{end}}
</ul>
{{else}}
<p>None.</p>
{{end}}

<h2>Border pairs</h2>
<table border="1">
  <tr><th>Pair</th><th>Border length (km)</th></tr>
  {{range .Rows}}
  <tr><td>{{.BorderPair}}</td><td>{{printf "%.0f" .BorderLengthKM}}</td></tr>
  {{end}}
</table>
</body>
</html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

type correlationRow struct {
	Column string
	R      float64
}

type reportData struct {
	Result       *model.AnalysisResult
	Correlations []correlationRow
	Rows         []model.IntegratedRow
}

// Write renders the report to the given path, creating parent directories.
func Write(result *model.AnalysisResult, rows []model.IntegratedRow, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "report: create output dir")
	}

	corr := make([]correlationRow, 0, len(result.EconomicCorrelations))
	for col, r := range result.EconomicCorrelations {
		corr = append(corr, correlationRow{Column: col, R: r})
	}
	sort.Slice(corr, func(i, j int) bool { return corr[i].Column < corr[j].Column })

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "report: create output file")
	}
	defer f.Close() //nolint:errcheck

	data := reportData{Result: result, Correlations: corr, Rows: rows}
	if err := tmpl.Execute(f, data); err != nil {
		return eris.Wrap(err, "report: render")
	}

	return nil
}
