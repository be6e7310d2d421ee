package component

// Bus is a pure routing node. Inputs reference component outputs feeding the
// bus, Outputs reference component inputs fed by it; conservation across a
// time step is the solver's job, resolving the references is ours.
type Bus struct {
	Name    string `json:"Name"`
	Inputs  []Ref  `json:"Inputs"`
	Outputs []Ref  `json:"Outputs"`
	Meta    Meta   `json:"Meta"`
}

// BusConfig wires a bus up with "component.commodity" reference strings,
// the form the model definitions are written in.
type BusConfig struct {
	Inputs  []string
	Outputs []string
	Meta    Meta
}

// NewBus parses every reference and returns the finished record. Malformed
// references fail here; whether they point at anything real is decided
// later, against the assembled component table.
func NewBus(name string, cfg BusConfig) (Bus, error) {
	b := Bus{
		Name: name,
		Meta: cfg.Meta,
	}
	if name == "" {
		return Bus{}, configErr(name, "", "name must not be empty")
	}
	if len(cfg.Inputs) == 0 && len(cfg.Outputs) == 0 {
		return Bus{}, configErr(name, "", "bus routes nothing: no inputs, no outputs")
	}
	var err error
	if b.Inputs, err = parseRefs(name, "Inputs", cfg.Inputs); err != nil {
		return Bus{}, err
	}
	if b.Outputs, err = parseRefs(name, "Outputs", cfg.Outputs); err != nil {
		return Bus{}, err
	}
	return b, nil
}

// Validate re-checks the record invariants.
func (b Bus) Validate() error {
	if b.Name == "" {
		return configErr(b.Name, "", "name must not be empty")
	}
	if len(b.Inputs) == 0 && len(b.Outputs) == 0 {
		return configErr(b.Name, "", "bus routes nothing: no inputs, no outputs")
	}
	for _, r := range b.Inputs {
		if r.Component == "" || r.Commodity == "" {
			return configErr(b.Name, "Inputs", "incomplete reference %q", r)
		}
	}
	for _, r := range b.Outputs {
		if r.Component == "" || r.Commodity == "" {
			return configErr(b.Name, "Outputs", "incomplete reference %q", r)
		}
	}
	return nil
}

func parseRefs(bus, field string, raw []string) ([]Ref, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	refs := make([]Ref, 0, len(raw))
	for _, s := range raw {
		r, err := ParseRef(s)
		if err != nil {
			return nil, configErr(bus, field, "%v", err)
		}
		refs = append(refs, r)
	}
	return refs, nil
}
