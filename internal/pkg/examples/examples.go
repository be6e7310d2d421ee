/*
Package examples builds the reference energy system models. Each builder
assembles a fixed set of component records into a validated system; the
numbers are the model, so they live here as literals. Load profiles come
from CSV files under the configured profile directory.
*/
package examples

import (
	"math/rand"

	"github.com/ohowland/esm_core/internal/pkg/component"
	"github.com/ohowland/esm_core/internal/pkg/system"
)

// DefaultProfileDir is where the load profile files live relative to the
// working directory.
const DefaultProfileDir = "data/profiles"

// Load profile files and the columns read from them.
const (
	solarProfile    = "solar_HH_2019.csv"
	windProfile     = "wind_HH_2019.csv"
	elDemandProfile = "el_demand_HH_2019.csv"
	thDemandProfile = "th_demand_HH_2019.csv"

	solarColumn    = "Erzeugung (MW)"
	windColumn     = "Erzeugung (MW)"
	elDemandColumn = "Last (MW)"
	thDemandColumn = "actual_total_load"
)

// Config adjusts how the example systems are built. The zero value picks
// every default.
type Config struct {
	// ProfileDir is the load profile directory. Empty picks
	// DefaultProfileDir.
	ProfileDir string

	// Periods overrides the number of hourly steps for the examples that
	// read load profiles. Zero keeps each example's default.
	Periods int

	// EmissionLimit caps total system emissions where an example takes a
	// cap (HamburgBasic). Zero keeps the example default.
	EmissionLimit component.Float

	// Rand switches HamburgBasic to a synthetic demand series drawn from
	// this source instead of the recorded profile. Nil keeps the profile.
	Rand *rand.Rand
}

func (c Config) profileDir() string {
	if c.ProfileDir == "" {
		return DefaultProfileDir
	}
	return c.ProfileDir
}

func (c Config) periods(fallback int) int {
	if c.Periods <= 0 {
		return fallback
	}
	return c.Periods
}

// Example couples a named builder with its canonical dump filename. An
// empty filename derives the name from the system UID.
type Example struct {
	Name     string
	Filename string
	Build    func(Config) (*system.System, error)
}

// All lists the example systems in build order.
func All() []Example {
	return []Example{
		{
			Name:  "zero_costs",
			Build: func(Config) (*system.System, error) { return ZeroCosts() },
		},
		{
			Name:     "hhes",
			Filename: "hhes.tsf",
			Build:    Hamburg,
		},
		{
			Name:     "hhes_basic",
			Filename: "hhes_basic.tsf",
			Build:    HamburgBasic,
		},
	}
}
