package component

// Source injects commodities into the system: fuel supplies, renewables,
// imports. Flows are keyed by the commodities declared in Outputs.
type Source struct {
	Name            string                  `json:"Name"`
	Outputs         []string                `json:"Outputs"`
	FlowRates       map[string]MinMax       `json:"FlowRates,omitempty"`
	FlowCosts       map[string]Float        `json:"FlowCosts,omitempty"`
	FlowEmissions   map[string]Float        `json:"FlowEmissions,omitempty"`
	Timeseries      map[string]SeriesBounds `json:"Timeseries,omitempty"`
	Expandable      map[string]bool         `json:"Expandable,omitempty"`
	ExpansionCosts  map[string]Float        `json:"ExpansionCosts,omitempty"`
	ExpansionLimits map[string]MinMax       `json:"ExpansionLimits,omitempty"`
	Meta            Meta                    `json:"Meta"`
}

// SourceConfig is the recognized option set for a Source. Zero values mean
// "unconstrained": no costs, no emissions, no fixed series, no expansion.
type SourceConfig struct {
	Outputs         []string
	FlowRates       map[string]MinMax
	FlowCosts       map[string]Float
	FlowEmissions   map[string]Float
	Timeseries      map[string]SeriesBounds
	Expandable      map[string]bool
	ExpansionCosts  map[string]Float
	ExpansionLimits map[string]MinMax
	Meta            Meta
}

// NewSource validates cfg and returns the finished record. The config maps
// are copied; the caller keeps ownership of its own values.
func NewSource(name string, cfg SourceConfig) (Source, error) {
	s := Source{
		Name:            name,
		Outputs:         copyStrings(cfg.Outputs),
		FlowRates:       copyMinMax(cfg.FlowRates),
		FlowCosts:       copyFloats(cfg.FlowCosts),
		FlowEmissions:   copyFloats(cfg.FlowEmissions),
		Timeseries:      copySeriesBounds(cfg.Timeseries),
		Expandable:      copyBools(cfg.Expandable),
		ExpansionCosts:  copyFloats(cfg.ExpansionCosts),
		ExpansionLimits: copyMinMax(cfg.ExpansionLimits),
		Meta:            cfg.Meta,
	}
	if err := s.Validate(); err != nil {
		return Source{}, err
	}
	return s, nil
}

// Validate re-checks the record invariants. New-constructed records always
// pass; restored dumps are run through it again.
func (s Source) Validate() error {
	if s.Name == "" {
		return configErr(s.Name, "", "name must not be empty")
	}
	if len(s.Outputs) == 0 {
		return configErr(s.Name, "Outputs", "source needs at least one output commodity")
	}
	declared := commoditySet(s.Outputs)
	return validateFlows(s.Name, declared, declared, flowOptions{
		rates:      s.FlowRates,
		costs:      s.FlowCosts,
		emissions:  s.FlowEmissions,
		timeseries: s.Timeseries,
		expandable: s.Expandable,
		expCosts:   s.ExpansionCosts,
		expLimits:  s.ExpansionLimits,
	})
}
