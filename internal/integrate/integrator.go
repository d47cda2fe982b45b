package integrate

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/model"
	"github.com/geoborder/borderlens/internal/reconcile"
)

// Integrator joins a loaded economic record table with a border pair table.
type Integrator struct {
	records  []model.EconomicRecord
	pairs    []model.BorderPair
	resolver *reconcile.Resolver
	log      *zap.Logger
}

// New builds an integrator. It fails fast when the record table is empty:
// downstream the only hard failure is total absence of usable data.
func New(records []model.EconomicRecord, pairs []model.BorderPair) (*Integrator, error) {
	if len(records) == 0 {
		return nil, econ.ErrNoData
	}
	if len(pairs) == 0 {
		return nil, eris.New("integrate: no border pairs to process")
	}
	return &Integrator{
		records:  records,
		pairs:    pairs,
		resolver: reconcile.NewResolver(econ.Countries(records)),
		log:      zap.L().With(zap.String("component", "integrate")),
	}, nil
}

// Run produces one integrated row per border pair with a non-empty ratio
// set. Pairs whose names do not resolve, or that share no indicator with a
// usable value, are dropped with a warning. Never fatal per pair.
func (it *Integrator) Run() []model.IntegratedRow {
	rows := make([]model.IntegratedRow, 0, len(it.pairs))

	for _, pair := range it.pairs {
		it.log.Info("processing border pair",
			zap.String("country_1", pair.Country1),
			zap.String("country_2", pair.Country2),
		)

		resolved1, ok1 := it.resolver.Resolve(pair.Country1)
		resolved2, ok2 := it.resolver.Resolve(pair.Country2)
		if !ok1 || !ok2 {
			it.log.Warn("could not resolve country names, dropping pair",
				zap.String("country_1", pair.Country1),
				zap.Bool("resolved_1", ok1),
				zap.String("country_2", pair.Country2),
				zap.Bool("resolved_2", ok2),
			)
			continue
		}

		ratios := CalculateRatios(it.records, resolved1, resolved2)
		if len(ratios) == 0 {
			it.log.Warn("no usable economic overlap, dropping pair",
				zap.String("country_1", pair.Country1),
				zap.String("country_2", pair.Country2),
			)
			continue
		}

		rows = append(rows, model.IntegratedRow{
			BorderPair:     pair.Label(),
			Country1:       pair.Country1,
			Country2:       pair.Country2,
			BorderLengthKM: pair.BorderLengthKM,
			Ratios:         ratios,
		})
	}

	it.log.Info("integration complete",
		zap.Int("pairs", len(it.pairs)),
		zap.Int("rows", len(rows)),
	)
	return rows
}

// Indicators returns the distinct indicators of the loaded record table in
// first-seen order. Used to build the fixed output schema.
func (it *Integrator) Indicators() []string {
	return econ.Indicators(it.records)
}
