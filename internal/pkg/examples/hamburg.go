package examples

import (
	"path/filepath"
	"time"

	"github.com/ohowland/esm_core/internal/pkg/component"
	"github.com/ohowland/esm_core/internal/pkg/economics"
	"github.com/ohowland/esm_core/internal/pkg/profile"
	"github.com/ohowland/esm_core/internal/pkg/system"
	"github.com/ohowland/esm_core/internal/pkg/timeframe"
)

// Hamburg builds a model of Hamburg's energy system for 2019: a gas-fired
// CHP unit and a heat plant next to solar, onshore wind and an electrical
// storage, with costly import sources covering what the city cannot supply
// itself. Demand follows recorded load profiles; one time step is one hour.
// The default timeframe covers the first cfg.Periods hours of the year.
func Hamburg(cfg Config) (*system.System, error) {
	periods := cfg.periods(24)
	dir := cfg.profileDir()

	tf, err := timeframe.Hourly(time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC), periods)
	if err != nil {
		return nil, err
	}

	pv, err := profile.LoadColumn(filepath.Join(dir, solarProfile), solarColumn, periods)
	if err != nil {
		return nil, err
	}
	maxPV := component.Float(profile.Max(pv))

	wo, err := profile.LoadColumn(filepath.Join(dir, windProfile), windColumn, periods)
	if err != nil {
		return nil, err
	}
	maxWO := component.Float(profile.Max(wo))

	de, err := profile.LoadColumn(filepath.Join(dir, elDemandProfile), elDemandColumn, periods)
	if err != nil {
		return nil, err
	}
	maxDE := component.Float(profile.Max(de))

	th, err := profile.LoadColumn(filepath.Join(dir, thDemandProfile), thDemandColumn, periods)
	if err != nil {
		return nil, err
	}
	maxTH := component.Float(profile.Max(th))

	gasSupply, err := component.NewSource("gas supply", component.SourceConfig{
		Outputs: []string{"gas"},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "coupled",
			Carrier:  "gas",
			NodeType: "gas_supply",
		},
	})
	if err != nil {
		return nil, err
	}

	// HKW ADM
	gasPlant, err := component.NewTransformer("gas power plant", component.TransformerConfig{
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity", "hot_water"},
		Conversions: map[component.Conversion]component.Float{
			{From: "gas", To: "electricity"}: 0.3773,
			{From: "gas", To: "hot_water"}:   0.3,
		},
		FlowRates: map[string]component.MinMax{
			"gas":         {Min: 0, Max: component.Inf},
			"electricity": {Min: 0, Max: component.Inf},
			"hot_water":   {Min: 0, Max: component.Inf},
		},
		FlowCosts: map[string]component.Float{
			"gas":         0,
			"electricity": 90,
			"hot_water":   21.6,
		},
		FlowEmissions: map[string]component.Float{
			"gas":         0.2,
			"electricity": 0,
			"hot_water":   0,
		},
		InitialStatus:       false,
		StatusInertia:       component.OnOff{On: 0, Off: 1},
		StatusChangingCosts: component.OnOff{On: 24, Off: 0},
		Meta: component.Meta{
			Region:    "HH",
			Sector:    "coupled",
			Carrier:   "gas",
			NodeType:  "HKW ADM",
			Latitude:  53.51,
			Longitude: 9.94985,
		},
	})
	if err != nil {
		return nil, err
	}

	// Heizwerk Hafencity
	heatPlant, err := component.NewTransformer("heat power plant", component.TransformerConfig{
		Inputs:  []string{"gas"},
		Outputs: []string{"hot_water"},
		Conversions: map[component.Conversion]component.Float{
			{From: "gas", To: "hot_water"}: 0.96666,
		},
		FlowRates: map[string]component.MinMax{
			"gas":       {Min: 0, Max: component.Inf},
			"hot_water": {Min: 0, Max: 348},
		},
		FlowCosts: map[string]component.Float{
			"gas":       0,
			"hot_water": 20,
		},
		FlowEmissions: map[string]component.Float{
			"gas":       0,
			"hot_water": 0.2,
		},
		Expandable: map[string]bool{"gas": false, "hot_water": true},
		ExpansionCosts: map[string]component.Float{
			"gas":       0,
			"hot_water": 0,
		},
		ExpansionLimits: map[string]component.MinMax{
			"gas":       {Min: 0, Max: component.Inf},
			"hot_water": {Min: 348, Max: component.Inf},
		},
		Meta: component.Meta{
			Region:    "HH",
			Sector:    "heat",
			Carrier:   "gas",
			NodeType:  "Heizwerk Hafencity",
			Latitude:  53.54106052,
			Longitude: 9.99590096,
		},
	})
	if err != nil {
		return nil, err
	}

	solar, err := component.NewSource("solar", component.SourceConfig{
		Outputs:       []string{"electricity"},
		FlowRates:     map[string]component.MinMax{"electricity": {Min: 0, Max: maxPV}},
		FlowCosts:     map[string]component.Float{"electricity": 74},
		FlowEmissions: map[string]component.Float{"electricity": 0},
		Timeseries:    map[string]component.SeriesBounds{"electricity": component.Fixed(pv)},
		Expandable:    map[string]bool{"electricity": true},
		ExpansionCosts: map[string]component.Float{
			"electricity": component.Float(economics.Annuity(1000000, 20, 0.05)),
		},
		ExpansionLimits: map[string]component.MinMax{
			"electricity": {Min: maxPV, Max: component.Inf},
		},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "power",
			Carrier:  "solar",
			NodeType: "renewable",
		},
	})
	if err != nil {
		return nil, err
	}

	wind, err := component.NewSource("wind", component.SourceConfig{
		Outputs:       []string{"electricity"},
		FlowRates:     map[string]component.MinMax{"electricity": {Min: 0, Max: maxWO}},
		FlowCosts:     map[string]component.Float{"electricity": 61},
		FlowEmissions: map[string]component.Float{"electricity": 0.007},
		Timeseries:    map[string]component.SeriesBounds{"electricity": component.Fixed(wo)},
		Expandable:    map[string]bool{"electricity": true},
		ExpansionCosts: map[string]component.Float{
			"electricity": component.Float(economics.Annuity(1750000, 20, 0.05)),
		},
		ExpansionLimits: map[string]component.MinMax{
			"electricity": {Min: maxWO, Max: component.Inf},
		},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "power",
			Carrier:  "wind",
			NodeType: "renewable",
		},
	})
	if err != nil {
		return nil, err
	}

	storage, err := component.NewStorage("electrical storage", component.StorageConfig{
		Input:         "electricity",
		Output:        "electricity",
		Capacity:      1,
		InitialSOC:    1,
		FlowRates:     map[string]component.MinMax{"electricity": {Min: 0, Max: component.Inf}},
		FlowCosts:     map[string]component.Float{"electricity": 20},
		FlowEmissions: map[string]component.Float{"electricity": 0},
		ExpansionCosts: map[string]component.Float{
			component.CapacityKey: component.Float(economics.Annuity(1000000, 10, 0.05)),
		},
		Meta: component.Meta{
			Region:  "HH",
			Sector:  "power",
			Carrier: "electricity",
		},
	})
	if err != nil {
		return nil, err
	}

	// P2H Karoline
	powerToHeat, err := component.NewTransformer("power to heat", component.TransformerConfig{
		Inputs:  []string{"electricity"},
		Outputs: []string{"hot_water"},
		Conversions: map[component.Conversion]component.Float{
			{From: "electricity", To: "hot_water"}: 0.99,
		},
		FlowRates: map[string]component.MinMax{
			"electricity": {Min: 0, Max: component.Inf},
			"hot_water":   {Min: 0, Max: 45},
		},
		FlowCosts:     map[string]component.Float{"electricity": 0, "hot_water": 0},
		FlowEmissions: map[string]component.Float{"electricity": 0, "hot_water": 0},
		Expandable:    map[string]bool{"electricity": false, "hot_water": true},
		ExpansionCosts: map[string]component.Float{
			"hot_water": component.Float(economics.Annuity(200000, 30, 0.05)),
		},
		ExpansionLimits: map[string]component.MinMax{
			"hot_water": {Min: 45, Max: 200},
		},
		Meta: component.Meta{
			Region:    "HH",
			Sector:    "heat",
			Carrier:   "hot_water",
			NodeType:  "power2heat",
			Latitude:  53.55912,
			Longitude: 9.97148,
		},
	})
	if err != nil {
		return nil, err
	}

	importedEl, err := component.NewSource("imported el", component.SourceConfig{
		Outputs:        []string{"electricity"},
		FlowCosts:      map[string]component.Float{"electricity": 999},
		FlowEmissions:  map[string]component.Float{"electricity": 0.401},
		ExpansionCosts: map[string]component.Float{"electricity": 999999999},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "power",
			Carrier:  "electricity",
			NodeType: "import",
		},
	})
	if err != nil {
		return nil, err
	}

	importedTh, err := component.NewSource("imported th", component.SourceConfig{
		Outputs:        []string{"hot_water"},
		FlowCosts:      map[string]component.Float{"hot_water": 999},
		FlowEmissions:  map[string]component.Float{"hot_water": 0.1},
		ExpansionCosts: map[string]component.Float{"hot_water": 999999999},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "heat",
			Carrier:  "hot_water",
			NodeType: "import",
		},
	})
	if err != nil {
		return nil, err
	}

	demandEl, err := component.NewSink("demand el", component.SinkConfig{
		Inputs:     []string{"electricity"},
		FlowRates:  map[string]component.MinMax{"electricity": {Min: 0, Max: maxDE}},
		Timeseries: map[string]component.SeriesBounds{"electricity": component.Fixed(de)},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "power",
			Carrier:  "electricity",
			NodeType: "demand",
		},
	})
	if err != nil {
		return nil, err
	}

	demandTh, err := component.NewSink("demand th", component.SinkConfig{
		Inputs:     []string{"hot_water"},
		FlowRates:  map[string]component.MinMax{"hot_water": {Min: 0, Max: maxTH}},
		Timeseries: map[string]component.SeriesBounds{"hot_water": component.Fixed(th)},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "heat",
			Carrier:  "hot_water",
			NodeType: "demand",
		},
	})
	if err != nil {
		return nil, err
	}

	excessEl, err := component.NewSink("excess el", component.SinkConfig{
		Inputs: []string{"electricity"},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "power",
			Carrier:  "electricity",
			NodeType: "excess",
		},
	})
	if err != nil {
		return nil, err
	}

	excessTh, err := component.NewSink("excess th", component.SinkConfig{
		Inputs: []string{"hot_water"},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "heat",
			Carrier:  "hot_water",
			NodeType: "excess",
		},
	})
	if err != nil {
		return nil, err
	}

	gasPipeline, err := component.NewBus("gas pipeline", component.BusConfig{
		Inputs:  []string{"gas supply.gas"},
		Outputs: []string{"gas power plant.gas", "heat power plant.gas"},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "coupled",
			Carrier:  "gas",
			NodeType: "gas_pipeline",
		},
	})
	if err != nil {
		return nil, err
	}

	powerline, err := component.NewBus("powerline", component.BusConfig{
		Inputs: []string{
			"gas power plant.electricity",
			"solar.electricity",
			"wind.electricity",
			"imported el.electricity",
			"electrical storage.electricity",
		},
		Outputs: []string{
			"demand el.electricity",
			"excess el.electricity",
			"electrical storage.electricity",
			"power to heat.electricity",
		},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "power",
			Carrier:  "electricity",
			NodeType: "powerline",
		},
	})
	if err != nil {
		return nil, err
	}

	districtHeating, err := component.NewBus("district heating pipeline", component.BusConfig{
		Inputs: []string{
			"gas power plant.hot_water",
			"imported th.hot_water",
			"power to heat.hot_water",
			"heat power plant.hot_water",
		},
		Outputs: []string{
			"demand th.hot_water",
			"excess th.hot_water",
		},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "heat",
			Carrier:  "hot_water",
			NodeType: "district_heating_pipeline",
		},
	})
	if err != nil {
		return nil, err
	}

	return system.New("Energy System Hamburg", system.Config{
		Busses:       []component.Bus{gasPipeline, powerline, districtHeating},
		Sources:      []component.Source{gasSupply, solar, wind, importedEl, importedTh},
		Sinks:        []component.Sink{demandEl, demandTh, excessEl, excessTh},
		Transformers: []component.Transformer{gasPlant, heatPlant, powerToHeat},
		Storages:     []component.Storage{storage},
		Timeframe:    tf,
		GlobalConstraints: system.GlobalConstraints{
			Name: "2019",
			Limits: map[string]component.Float{
				"emissions": component.Inf,
				"resources": component.Inf,
			},
		},
	})
}
