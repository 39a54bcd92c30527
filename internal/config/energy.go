package config

import (
	"strings"

	"github.com/theirongolddev/meterstat/internal/model"
)

// DefaultCalorificFactor converts cubic metres of gas to kWh: volume
// correction 1.02264 times calorific value 40.0 MJ/m³ divided by 3.6 MJ/kWh.
const DefaultCalorificFactor = 1.02264 * 40.0 / 3.6

// KindForColumn infers the fuel of an export from its consumption column
// name. Columns carrying the electric unit marker are electric, all others
// are gas reported in volumetric units.
func KindForColumn(column, electricUnit string) model.SourceKind {
	if electricUnit != "" && strings.Contains(column, electricUnit) {
		return model.Electric
	}
	return model.Gas
}

// EnergyUse converts a raw meter value into kWh.
func EnergyUse(raw float64, kind model.SourceKind, calorificFactor float64) float64 {
	if kind == model.Gas {
		return raw * calorificFactor
	}
	return raw
}
