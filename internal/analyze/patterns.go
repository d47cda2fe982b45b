package analyze

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/geoborder/borderlens/internal/integrate"
	"github.com/geoborder/borderlens/internal/model"
)

// Patterns correlates border length against every derived ratio column and
// names the strongest correlate. columns is the run's fixed column set;
// ratio columns are evaluated in schema order, which makes the
// strongest-correlate tie-break deterministic. Columns whose correlation is
// undefined (fewer than two carrying rows, or zero variance) are omitted
// from the result, never zero-filled.
func Patterns(rows []model.IntegratedRow, columns []string) *model.AnalysisResult {
	log := zap.L().With(zap.String("component", "analyze"))

	result := &model.AnalysisResult{
		TotalBorderPairs:     len(rows),
		EconomicCorrelations: make(map[string]float64),
		KeyInsights:          []string{},
	}

	var lengthSum float64
	for _, row := range rows {
		lengthSum += row.BorderLengthKM
	}
	if len(rows) > 0 {
		result.AverageBorderLength = lengthSum / float64(len(rows))
	}

	ratioCols := integrate.RatioColumns(columns)

	var strongestCol string
	var strongestR float64
	for _, col := range ratioCols {
		// Only rows that carry the column contribute points.
		var lengths, values []float64
		for _, row := range rows {
			if v, ok := row.Ratios[col]; ok {
				lengths = append(lengths, row.BorderLengthKM)
				values = append(values, v)
			}
		}

		r, ok := Correlation(lengths, values)
		if !ok {
			continue
		}
		result.EconomicCorrelations[col] = r

		if strongestCol == "" || math.Abs(r) > math.Abs(strongestR) {
			strongestCol = col
			strongestR = r
		}
	}

	if strongestCol != "" {
		result.KeyInsights = append(result.KeyInsights,
			fmt.Sprintf("Strongest economic predictor: %s (r=%.3f)", strongestCol, strongestR))
	}

	log.Info("pattern analysis complete",
		zap.Int("pairs", result.TotalBorderPairs),
		zap.Int("correlations", len(result.EconomicCorrelations)),
	)
	return result
}
