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

// HamburgBasic builds the reduced single-bus variant of the Hamburg system:
// one gas power plant, solar, wind and an import source feeding electrical
// demand and an excess sink over one powerline. cfg.EmissionLimit caps the
// system's total emissions; the default cap is high enough to never bind.
// With cfg.Rand set, demand is drawn uniformly from [300, 400) MW instead
// of the recorded profile.
func HamburgBasic(cfg Config) (*system.System, error) {
	periods := cfg.periods(100)
	dir := cfg.profileDir()

	emissionLimit := cfg.EmissionLimit
	if emissionLimit == 0 {
		emissionLimit = 99999999999
	}

	tf, err := timeframe.Hourly(time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC), periods)
	if err != nil {
		return nil, err
	}

	var de component.Series
	if cfg.Rand != nil {
		de = profile.Uniform(cfg.Rand, 300, 400, periods)
	} else {
		de, err = profile.LoadColumn(filepath.Join(dir, elDemandProfile), elDemandColumn, periods)
		if err != nil {
			return nil, err
		}
	}
	maxDE := component.Float(profile.Max(de))

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

	powerline, err := component.NewBus("powerline", component.BusConfig{
		Inputs: []string{
			"gas power plant.electricity",
			"imported electricity.electricity",
			"solar.electricity",
			"wind.electricity",
		},
		Outputs: []string{
			"demand.electricity",
			"excess.electricity",
		},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "Power",
			Carrier:  "electricity",
			NodeType: "AC-Bus",
		},
	})
	if err != nil {
		return nil, err
	}

	demand, err := component.NewSink("demand", component.SinkConfig{
		Inputs:     []string{"electricity"},
		FlowRates:  map[string]component.MinMax{"electricity": {Min: 0, Max: maxDE}},
		Timeseries: map[string]component.SeriesBounds{"electricity": component.Fixed(de)},
		Meta: component.Meta{
			Region:   "HH",
			Carrier:  "electricity",
			NodeType: "DEMAND",
		},
	})
	if err != nil {
		return nil, err
	}

	excess, err := component.NewSink("excess", component.SinkConfig{
		Inputs: []string{"electricity"},
		Meta: component.Meta{
			Region:   "HH",
			Carrier:  "electricity",
			NodeType: "DEMAND",
		},
	})
	if err != nil {
		return nil, err
	}

	wind, err := component.NewSource("wind", component.SourceConfig{
		Outputs:       []string{"electricity"},
		FlowRates:     map[string]component.MinMax{"electricity": {Min: 0, Max: maxWO}},
		FlowCosts:     map[string]component.Float{"electricity": 8},
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

	solar, err := component.NewSource("solar", component.SourceConfig{
		Outputs:       []string{"electricity"},
		FlowRates:     map[string]component.MinMax{"electricity": {Min: 0, Max: maxPV}},
		FlowCosts:     map[string]component.Float{"electricity": 20},
		FlowEmissions: map[string]component.Float{"electricity": 0},
		Timeseries:    map[string]component.SeriesBounds{"electricity": component.Fixed(pv)},
		Expandable:    map[string]bool{"electricity": true},
		ExpansionCosts: map[string]component.Float{
			"electricity": component.Float(economics.Annuity(10000, 20, 0.05)),
		},
		ExpansionLimits: map[string]component.MinMax{
			"electricity": {Min: 0, Max: component.Inf},
		},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "Power",
			Carrier:  "electricity",
			NodeType: "renewable",
		},
	})
	if err != nil {
		return nil, err
	}

	gasPlant, err := component.NewTransformer("gas power plant", component.TransformerConfig{
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity"},
		Conversions: map[component.Conversion]component.Float{
			{From: "gas", To: "electricity"}: 0.4075,
		},
		FlowRates: map[string]component.MinMax{
			"gas":         {Min: 0, Max: component.Inf},
			"electricity": {Min: 0, Max: 1000},
		},
		FlowCosts: map[string]component.Float{
			"gas":         10,
			"electricity": 30,
		},
		FlowEmissions: map[string]component.Float{
			"gas":         0.2,
			"electricity": 0,
		},
		InitialStatus:       false,
		StatusInertia:       component.OnOff{On: 0, Off: 7},
		StatusChangingCosts: component.OnOff{On: 30, Off: 0},
		Meta: component.Meta{
			Region:   "HH",
			Sector:   "coupled",
			Carrier:  "gas",
			NodeType: "GAS_POWERPLANT",
		},
	})
	if err != nil {
		return nil, err
	}

	importedEl, err := component.NewSource("imported electricity", component.SourceConfig{
		Outputs:       []string{"electricity"},
		FlowRates:     map[string]component.MinMax{"electricity": {Min: 0, Max: component.Inf}},
		FlowCosts:     map[string]component.Float{"electricity": 9999},
		FlowEmissions: map[string]component.Float{"electricity": 0.45},
		Meta: component.Meta{
			Region:   "HH",
			Carrier:  "electricity",
			NodeType: "EL_IMPORT",
		},
	})
	if err != nil {
		return nil, err
	}

	return system.New("hhes_basic", system.Config{
		Busses:       []component.Bus{powerline},
		Sources:      []component.Source{importedEl, solar, wind},
		Sinks:        []component.Sink{demand, excess},
		Transformers: []component.Transformer{gasPlant},
		Timeframe:    tf,
		GlobalConstraints: system.GlobalConstraints{
			Name: "hhes_basic",
			Limits: map[string]component.Float{
				"emissions": emissionLimit,
				"resources": component.Inf,
			},
		},
	})
}
