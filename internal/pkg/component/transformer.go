package component

// Transformer converts input commodities into output commodities at fixed
// efficiencies: power plants, CHP units, power-to-heat. The optional status
// fields model unit commitment inertia for solvers that support it.
type Transformer struct {
	Name                string                  `json:"Name"`
	Inputs              []string                `json:"Inputs"`
	Outputs             []string                `json:"Outputs"`
	Conversions         map[Conversion]Float    `json:"Conversions"`
	FlowRates           map[string]MinMax       `json:"FlowRates,omitempty"`
	FlowCosts           map[string]Float        `json:"FlowCosts,omitempty"`
	FlowEmissions       map[string]Float        `json:"FlowEmissions,omitempty"`
	Timeseries          map[string]SeriesBounds `json:"Timeseries,omitempty"`
	Expandable          map[string]bool         `json:"Expandable,omitempty"`
	ExpansionCosts      map[string]Float        `json:"ExpansionCosts,omitempty"`
	ExpansionLimits     map[string]MinMax       `json:"ExpansionLimits,omitempty"`
	InitialStatus       bool                    `json:"InitialStatus"`
	StatusInertia       OnOff                   `json:"StatusInertia"`
	StatusChangingCosts OnOff                   `json:"StatusChangingCosts"`
	CostsForBeingActive Float                   `json:"CostsForBeingActive"`
	Meta                Meta                    `json:"Meta"`
}

// TransformerConfig is the recognized option set for a Transformer.
type TransformerConfig struct {
	Inputs              []string
	Outputs             []string
	Conversions         map[Conversion]Float
	FlowRates           map[string]MinMax
	FlowCosts           map[string]Float
	FlowEmissions       map[string]Float
	Timeseries          map[string]SeriesBounds
	Expandable          map[string]bool
	ExpansionCosts      map[string]Float
	ExpansionLimits     map[string]MinMax
	InitialStatus       bool
	StatusInertia       OnOff
	StatusChangingCosts OnOff
	CostsForBeingActive Float
	Meta                Meta
}

// NewTransformer validates cfg and returns the finished record.
func NewTransformer(name string, cfg TransformerConfig) (Transformer, error) {
	t := Transformer{
		Name:                name,
		Inputs:              copyStrings(cfg.Inputs),
		Outputs:             copyStrings(cfg.Outputs),
		Conversions:         copyConversions(cfg.Conversions),
		FlowRates:           copyMinMax(cfg.FlowRates),
		FlowCosts:           copyFloats(cfg.FlowCosts),
		FlowEmissions:       copyFloats(cfg.FlowEmissions),
		Timeseries:          copySeriesBounds(cfg.Timeseries),
		Expandable:          copyBools(cfg.Expandable),
		ExpansionCosts:      copyFloats(cfg.ExpansionCosts),
		ExpansionLimits:     copyMinMax(cfg.ExpansionLimits),
		InitialStatus:       cfg.InitialStatus,
		StatusInertia:       cfg.StatusInertia,
		StatusChangingCosts: cfg.StatusChangingCosts,
		CostsForBeingActive: cfg.CostsForBeingActive,
		Meta:                cfg.Meta,
	}
	if err := t.Validate(); err != nil {
		return Transformer{}, err
	}
	return t, nil
}

// Validate re-checks the record invariants: conversions must pair a declared
// input with a declared output and carry a non-negative efficiency.
func (t Transformer) Validate() error {
	if t.Name == "" {
		return configErr(t.Name, "", "name must not be empty")
	}
	if len(t.Inputs) == 0 {
		return configErr(t.Name, "Inputs", "transformer needs at least one input commodity")
	}
	if len(t.Outputs) == 0 {
		return configErr(t.Name, "Outputs", "transformer needs at least one output commodity")
	}
	in := commoditySet(t.Inputs)
	out := commoditySet(t.Outputs)
	for conv, eff := range t.Conversions {
		if !in[conv.From] {
			return configErr(t.Name, "Conversions", "%s: %q is not a declared input", conv, conv.From)
		}
		if !out[conv.To] {
			return configErr(t.Name, "Conversions", "%s: %q is not a declared output", conv, conv.To)
		}
		if eff < 0 {
			return configErr(t.Name, "Conversions", "%s: efficiency %v is negative", conv, eff)
		}
	}
	declared := commoditySet(t.Inputs, t.Outputs)
	return validateFlows(t.Name, declared, declared, flowOptions{
		rates:      t.FlowRates,
		costs:      t.FlowCosts,
		emissions:  t.FlowEmissions,
		timeseries: t.Timeseries,
		expandable: t.Expandable,
		expCosts:   t.ExpansionCosts,
		expLimits:  t.ExpansionLimits,
	})
}

func copyConversions(m map[Conversion]Float) map[Conversion]Float {
	if len(m) == 0 {
		return nil
	}
	out := make(map[Conversion]Float, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
