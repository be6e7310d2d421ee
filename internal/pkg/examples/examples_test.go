package examples

import (
	"bytes"
	"math/rand"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/ohowland/esm_core/internal/pkg/component"
)

// the test binary runs inside the package directory; the shipped profiles
// live at the repository root
func testConfig() Config {
	return Config{ProfileDir: "../../../data/profiles"}
}

func TestZeroCosts(t *testing.T) {
	sys, err := ZeroCosts()
	assert.NilError(t, err)

	assert.Equal(t, sys.UID(), "Zero Costs Example")
	assert.Equal(t, sys.Timeframe().Len(), 4)
	assert.DeepEqual(t, sys.Nodes(), []string{
		"Powerline",
		"Emitting Source",
		"Capped Renewable",
		"Uncapped Renewable",
		"Demand",
	})
	assert.Equal(t, sys.GlobalConstraints().Limit("emissions"), component.Float(8))
}

func TestZeroCostsTopology(t *testing.T) {
	sys, err := ZeroCosts()
	assert.NilError(t, err)

	g, err := sys.Graph()
	assert.NilError(t, err)
	assert.Equal(t, g.EdgeCount(), 4)
	assert.DeepEqual(t, g.Edges("Powerline"), []string{"Demand"})
}

func TestZeroCostsDeterministic(t *testing.T) {
	sys1, err := ZeroCosts()
	assert.NilError(t, err)
	sys2, err := ZeroCosts()
	assert.NilError(t, err)

	b1, err := sys1.Encode()
	assert.NilError(t, err)
	b2, err := sys2.Encode()
	assert.NilError(t, err)
	assert.Assert(t, bytes.Equal(b1, b2), "two builds must dump identical bytes")
}

func TestHamburg(t *testing.T) {
	sys, err := Hamburg(testConfig())
	assert.NilError(t, err)

	assert.Equal(t, sys.UID(), "Energy System Hamburg")
	assert.Equal(t, sys.Timeframe().Len(), 24)
	assert.Equal(t, len(sys.Nodes()), 16)
	assert.Equal(t, len(sys.Busses()), 3)
	assert.Equal(t, len(sys.Sources()), 5)
	assert.Equal(t, len(sys.Sinks()), 4)
	assert.Equal(t, len(sys.Transformers()), 3)
	assert.Equal(t, len(sys.Storages()), 1)
	assert.Equal(t, sys.GlobalConstraints().Name, "2019")
}

func TestHamburgConversions(t *testing.T) {
	sys, err := Hamburg(testConfig())
	assert.NilError(t, err)

	chp := sys.Transformers()[0]
	assert.Equal(t, chp.Name, "gas power plant")
	assert.Equal(t, chp.Conversions[component.Conversion{From: "gas", To: "electricity"}], component.Float(0.3773))
	assert.Equal(t, chp.Conversions[component.Conversion{From: "gas", To: "hot_water"}], component.Float(0.3))

	heat := sys.Transformers()[1]
	assert.Equal(t, heat.Name, "heat power plant")
	assert.Equal(t, heat.Conversions[component.Conversion{From: "gas", To: "hot_water"}], component.Float(0.96666))
}

func TestHamburgStorageExpansion(t *testing.T) {
	sys, err := Hamburg(testConfig())
	assert.NilError(t, err)

	st := sys.Storages()[0]
	assert.Equal(t, st.Name, "electrical storage")

	// capacity expansion is priced but the unit is not flagged expandable
	assert.Assert(t, st.ExpansionCosts[component.CapacityKey] > 0)
	assert.Assert(t, st.Expandable == nil)
}

func TestHamburgDemandFollowsProfiles(t *testing.T) {
	sys, err := Hamburg(testConfig())
	assert.NilError(t, err)

	demandEl := sys.Sinks()[0]
	assert.Equal(t, demandEl.Name, "demand el")
	ts := demandEl.Timeseries["electricity"]
	assert.Equal(t, len(ts.Lower), 24)
	assert.DeepEqual(t, ts.Lower, ts.Upper)

	// the flow rate cap is the profile peak over the window
	max := component.Float(0)
	for _, v := range ts.Upper {
		if v > max {
			max = v
		}
	}
	assert.Equal(t, demandEl.FlowRates["electricity"].Max, max)
}

func TestHamburgPeriodsOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Periods = 48

	sys, err := Hamburg(cfg)
	assert.NilError(t, err)
	assert.Equal(t, sys.Timeframe().Len(), 48)

	demandEl := sys.Sinks()[0]
	assert.Equal(t, len(demandEl.Timeseries["electricity"].Upper), 48)
}

func TestHamburgMissingProfileDir(t *testing.T) {
	_, err := Hamburg(Config{ProfileDir: "./no/such/dir"})
	assert.Assert(t, err != nil)
}

func TestHamburgDeterministic(t *testing.T) {
	sys1, err := Hamburg(testConfig())
	assert.NilError(t, err)
	sys2, err := Hamburg(testConfig())
	assert.NilError(t, err)

	b1, err := sys1.Encode()
	assert.NilError(t, err)
	b2, err := sys2.Encode()
	assert.NilError(t, err)
	assert.Assert(t, bytes.Equal(b1, b2), "two builds must dump identical bytes")
}

func TestHamburgBasic(t *testing.T) {
	sys, err := HamburgBasic(testConfig())
	assert.NilError(t, err)

	assert.Equal(t, sys.UID(), "hhes_basic")
	assert.Equal(t, sys.Timeframe().Len(), 100)
	assert.DeepEqual(t, sys.Nodes(), []string{
		"powerline",
		"imported electricity",
		"solar",
		"wind",
		"demand",
		"excess",
		"gas power plant",
	})
	assert.Equal(t, sys.GlobalConstraints().Limit("emissions"), component.Float(99999999999))
}

func TestHamburgBasicEmissionCap(t *testing.T) {
	cfg := testConfig()
	cfg.EmissionLimit = 250000

	sys, err := HamburgBasic(cfg)
	assert.NilError(t, err)
	assert.Equal(t, sys.GlobalConstraints().Limit("emissions"), component.Float(250000))
}

func TestHamburgBasicSyntheticDemand(t *testing.T) {
	cfg := testConfig()
	cfg.Periods = 24
	cfg.Rand = rand.New(rand.NewSource(1))

	sys, err := HamburgBasic(cfg)
	assert.NilError(t, err)

	demand := sys.Sinks()[0]
	assert.Equal(t, demand.Name, "demand")
	ts := demand.Timeseries["electricity"]
	assert.Equal(t, len(ts.Upper), 24)
	for _, v := range ts.Upper {
		assert.Assert(t, v >= 300 && v < 400)
	}
}

func TestHamburgBasicSyntheticDemandReproducible(t *testing.T) {
	cfg1 := testConfig()
	cfg1.Rand = rand.New(rand.NewSource(12))
	cfg2 := testConfig()
	cfg2.Rand = rand.New(rand.NewSource(12))

	sys1, err := HamburgBasic(cfg1)
	assert.NilError(t, err)
	sys2, err := HamburgBasic(cfg2)
	assert.NilError(t, err)

	b1, err := sys1.Encode()
	assert.NilError(t, err)
	b2, err := sys2.Encode()
	assert.NilError(t, err)
	assert.Assert(t, bytes.Equal(b1, b2), "same seed must draw the same demand")
}

func TestAll(t *testing.T) {
	all := All()
	assert.Equal(t, len(all), 3)
	assert.Equal(t, all[0].Name, "zero_costs")
	assert.Equal(t, all[1].Name, "hhes")
	assert.Equal(t, all[1].Filename, "hhes.tsf")
	assert.Equal(t, all[2].Name, "hhes_basic")

	uids := make(map[string]bool)
	for _, ex := range all {
		sys, err := ex.Build(testConfig())
		assert.NilError(t, err)
		assert.Assert(t, uids[sys.UID()] == false, "example UIDs must be unique")
		uids[sys.UID()] = true
	}
}
