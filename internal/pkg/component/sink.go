package component

// Sink consumes commodities: demands, exports, excess outlets. Flows are
// keyed by the commodities declared in Inputs.
type Sink struct {
	Name            string                  `json:"Name"`
	Inputs          []string                `json:"Inputs"`
	FlowRates       map[string]MinMax       `json:"FlowRates,omitempty"`
	FlowCosts       map[string]Float        `json:"FlowCosts,omitempty"`
	FlowEmissions   map[string]Float        `json:"FlowEmissions,omitempty"`
	Timeseries      map[string]SeriesBounds `json:"Timeseries,omitempty"`
	Expandable      map[string]bool         `json:"Expandable,omitempty"`
	ExpansionCosts  map[string]Float        `json:"ExpansionCosts,omitempty"`
	ExpansionLimits map[string]MinMax       `json:"ExpansionLimits,omitempty"`
	Meta            Meta                    `json:"Meta"`
}

// SinkConfig is the recognized option set for a Sink.
type SinkConfig struct {
	Inputs          []string
	FlowRates       map[string]MinMax
	FlowCosts       map[string]Float
	FlowEmissions   map[string]Float
	Timeseries      map[string]SeriesBounds
	Expandable      map[string]bool
	ExpansionCosts  map[string]Float
	ExpansionLimits map[string]MinMax
	Meta            Meta
}

// NewSink validates cfg and returns the finished record.
func NewSink(name string, cfg SinkConfig) (Sink, error) {
	s := Sink{
		Name:            name,
		Inputs:          copyStrings(cfg.Inputs),
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
		return Sink{}, err
	}
	return s, nil
}

// Validate re-checks the record invariants.
func (s Sink) Validate() error {
	if s.Name == "" {
		return configErr(s.Name, "", "name must not be empty")
	}
	if len(s.Inputs) == 0 {
		return configErr(s.Name, "Inputs", "sink needs at least one input commodity")
	}
	declared := commoditySet(s.Inputs)
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
