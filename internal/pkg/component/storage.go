package component

// CapacityKey is the expansion map key addressing a storage's capacity
// rather than one of its flow commodities.
const CapacityKey = "capacity"

// Storage buffers a single commodity between time steps. Input and Output
// name the charging and discharging commodity, normally the same one.
type Storage struct {
	Name            string                  `json:"Name"`
	Input           string                  `json:"Input"`
	Output          string                  `json:"Output"`
	Capacity        Float                   `json:"Capacity"`
	InitialSOC      Float                   `json:"InitialSOC"`
	FlowRates       map[string]MinMax       `json:"FlowRates,omitempty"`
	FlowCosts       map[string]Float        `json:"FlowCosts,omitempty"`
	FlowEmissions   map[string]Float        `json:"FlowEmissions,omitempty"`
	Timeseries      map[string]SeriesBounds `json:"Timeseries,omitempty"`
	Expandable      map[string]bool         `json:"Expandable,omitempty"`
	ExpansionCosts  map[string]Float        `json:"ExpansionCosts,omitempty"`
	ExpansionLimits map[string]MinMax       `json:"ExpansionLimits,omitempty"`
	Meta            Meta                    `json:"Meta"`
}

// StorageConfig is the recognized option set for a Storage. The expansion
// maps accept the flow commodities plus CapacityKey.
type StorageConfig struct {
	Input           string
	Output          string
	Capacity        Float
	InitialSOC      Float
	FlowRates       map[string]MinMax
	FlowCosts       map[string]Float
	FlowEmissions   map[string]Float
	Timeseries      map[string]SeriesBounds
	Expandable      map[string]bool
	ExpansionCosts  map[string]Float
	ExpansionLimits map[string]MinMax
	Meta            Meta
}

// NewStorage validates cfg and returns the finished record.
func NewStorage(name string, cfg StorageConfig) (Storage, error) {
	s := Storage{
		Name:            name,
		Input:           cfg.Input,
		Output:          cfg.Output,
		Capacity:        cfg.Capacity,
		InitialSOC:      cfg.InitialSOC,
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
		return Storage{}, err
	}
	return s, nil
}

// Validate re-checks the record invariants: capacity non-negative and the
// initial state of charge inside [0, capacity].
func (s Storage) Validate() error {
	if s.Name == "" {
		return configErr(s.Name, "", "name must not be empty")
	}
	if s.Input == "" || s.Output == "" {
		return configErr(s.Name, "", "storage needs an input and an output commodity")
	}
	if s.Capacity < 0 {
		return configErr(s.Name, "Capacity", "capacity %v is negative", s.Capacity)
	}
	if s.InitialSOC < 0 || s.InitialSOC > s.Capacity {
		return configErr(s.Name, "InitialSOC", "state of charge %v outside [0, %v]", s.InitialSOC, s.Capacity)
	}
	declared := commoditySet([]string{s.Input, s.Output})
	expansion := commoditySet([]string{s.Input, s.Output, CapacityKey})
	return validateFlows(s.Name, declared, expansion, flowOptions{
		rates:      s.FlowRates,
		costs:      s.FlowCosts,
		emissions:  s.FlowEmissions,
		timeseries: s.Timeseries,
		expandable: s.Expandable,
		expCosts:   s.ExpansionCosts,
		expLimits:  s.ExpansionLimits,
	})
}
