package examples

import (
	"time"

	"github.com/ohowland/esm_core/internal/pkg/component"
	"github.com/ohowland/esm_core/internal/pkg/profile"
	"github.com/ohowland/esm_core/internal/pkg/system"
	"github.com/ohowland/esm_core/internal/pkg/timeframe"
)

// ZeroCosts builds a small system with no costs allocated to commitment or
// expansion but a low emission constraint. With nothing to price, many
// dispatch solutions are equally optimal; downstream tools use this model to
// check how they handle solver ambiguity and zero-cost scaling.
func ZeroCosts() (*system.System, error) {
	tf, err := timeframe.Hourly(time.Date(1990, time.July, 13, 0, 0, 0, 0, time.UTC), 4)
	if err != nil {
		return nil, err
	}

	// No costs, no flow constraints, only emissions.
	emitting, err := component.NewSource("Emitting Source", component.SourceConfig{
		Outputs:       []string{"electricity"},
		FlowEmissions: map[string]component.Float{"electricity": 1},
	})
	if err != nil {
		return nil, err
	}

	// Existing capacity of 2 units, expandable up to 4.
	capped, err := component.NewSource("Capped Renewable", component.SourceConfig{
		Outputs:    []string{"electricity"},
		FlowRates:  map[string]component.MinMax{"electricity": {Min: 0, Max: 2}},
		Expandable: map[string]bool{"electricity": true},
		ExpansionLimits: map[string]component.MinMax{
			"electricity": {Min: 2, Max: 4},
		},
	})
	if err != nil {
		return nil, err
	}

	// Fixed dispatch series; expansion starts at the series peak.
	uncappedSeries := component.Series{1, 2, 3, 1}
	uncapped, err := component.NewSource("Uncapped Renewable", component.SourceConfig{
		Outputs:    []string{"electricity"},
		FlowRates:  map[string]component.MinMax{"electricity": {Min: 0, Max: 1}},
		Expandable: map[string]bool{"electricity": true},
		Timeseries: map[string]component.SeriesBounds{
			"electricity": component.Fixed(uncappedSeries),
		},
		ExpansionLimits: map[string]component.MinMax{
			"electricity": {Min: component.Float(profile.Max(uncappedSeries)), Max: component.Inf},
		},
	})
	if err != nil {
		return nil, err
	}

	powerline, err := component.NewBus("Powerline", component.BusConfig{
		Inputs: []string{
			"Emitting Source.electricity",
			"Capped Renewable.electricity",
			"Uncapped Renewable.electricity",
		},
		Outputs: []string{"Demand.electricity"},
	})
	if err != nil {
		return nil, err
	}

	demand, err := component.NewSink("Demand", component.SinkConfig{
		Inputs:    []string{"electricity"},
		FlowRates: map[string]component.MinMax{"electricity": {Min: 10, Max: 10}},
	})
	if err != nil {
		return nil, err
	}

	return system.New("Zero Costs Example", system.Config{
		Busses:    []component.Bus{powerline},
		Sources:   []component.Source{emitting, capped, uncapped},
		Sinks:     []component.Sink{demand},
		Timeframe: tf,
		GlobalConstraints: system.GlobalConstraints{
			Limits: map[string]component.Float{"emissions": 8},
		},
	})
}
