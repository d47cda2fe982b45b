// Package model defines the core data types shared across the pipeline.
package model

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// EconomicRecord is one observation of an economic indicator for a country.
// Value is never null: null observations are discarded at load time.
// (Country, Indicator, Year) is not necessarily unique across sources.
type EconomicRecord struct {
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Year        int     `json:"year"`
	Value       float64 `json:"value"`
	Indicator   string  `json:"indicator"`
}

// BorderPair is a modeled land border between two countries.
type BorderPair struct {
	Country1       string  `json:"country_1"`
	Country2       string  `json:"country_2"`
	BorderLengthKM float64 `json:"border_length_km"`
}

// Validate checks the pair for usable values.
func (p BorderPair) Validate() error {
	if strings.TrimSpace(p.Country1) == "" || strings.TrimSpace(p.Country2) == "" {
		return eris.New("border pair: country names must be non-empty")
	}
	if p.BorderLengthKM <= 0 {
		return eris.Errorf("border pair %s-%s: border length must be positive, got %v",
			p.Country1, p.Country2, p.BorderLengthKM)
	}
	return nil
}

// Label returns the human-readable pair label used in output tables.
func (p BorderPair) Label() string {
	return fmt.Sprintf("%s ↔ %s", p.Country1, p.Country2)
}

// RatioSet maps derived indicator keys ({indicator}_ratio, {indicator}_gap,
// {indicator}_{country}, {indicator}_year) to values. One bundle of keys per
// indicator where both countries have at least one observation.
type RatioSet map[string]float64

// IntegratedRow is one border pair joined with all of its derived economic
// fields. Ratios is non-empty by construction: pairs with no usable economic
// overlap are dropped before a row is built.
type IntegratedRow struct {
	BorderPair     string   `json:"border_pair"`
	Country1       string   `json:"country_1"`
	Country2       string   `json:"country_2"`
	BorderLengthKM float64  `json:"border_length_km"`
	Ratios         RatioSet `json:"ratios"`
}

// AnalysisResult summarizes economic patterns across the integrated table.
type AnalysisResult struct {
	TotalBorderPairs     int                `json:"total_border_pairs"`
	AverageBorderLength  float64            `json:"average_border_length"`
	EconomicCorrelations map[string]float64 `json:"economic_correlations"`
	KeyInsights          []string           `json:"key_insights"`
}
