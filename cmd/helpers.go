package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/geoborder/borderlens/internal/econ"
	"github.com/geoborder/borderlens/internal/model"
	"github.com/geoborder/borderlens/internal/store"
)

// loadRecords reads the indicator manifest and loads the economic table.
func loadRecords() ([]model.EconomicRecord, error) {
	manifest, err := econ.LoadManifest(cfg.Integrate.ManifestPath)
	if err != nil {
		return nil, err
	}
	return econ.NewLoader(cfg.DataDir, manifest).Load()
}

// openStore opens the SQLite run store and applies migrations.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
