/*
Package component defines the typed records an energy system model is
assembled from: Source, Sink, Transformer, Storage and Bus, plus the value
types their parameters are expressed in. Records are validated when they are
constructed; a record that came back from NewSource, NewSink, etc. is
internally consistent.
*/
package component

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Float is a model scalar. It behaves like float64 but round-trips the
// unbounded values +Inf/-Inf through JSON, which encoding/json rejects on
// the plain type. Unbounded flow and expansion limits are routine in these
// models, so every serialized scalar is a Float.
type Float float64

// Inf is the unbounded limit value.
var Inf = Float(math.Inf(1))

// MarshalJSON encodes ±Inf as the strings "+inf" and "-inf".
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"+inf"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-inf"`), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts plain numbers and the "+inf"/"-inf" strings.
func (f *Float) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"+inf"`, `"inf"`:
		*f = Float(math.Inf(1))
		return nil
	case `"-inf"`:
		*f = Float(math.Inf(-1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// MinMax bounds a flow rate or expansion limit. Valid when Min <= Max.
type MinMax struct {
	Min Float `json:"Min"`
	Max Float `json:"Max"`
}

// OnOff pairs a value for the on state with one for the off state, used for
// transformer status inertia and status changing costs.
type OnOff struct {
	On  Float `json:"On"`
	Off Float `json:"Off"`
}

// Series holds one value per time step of the system timeframe.
type Series []Float

// Values returns the series as a plain float64 slice.
func (s Series) Values() []float64 {
	vs := make([]float64, len(s))
	for i, v := range s {
		vs[i] = float64(v)
	}
	return vs
}

// SeriesBounds fixes the per-step lower and upper rate of a flow, overriding
// the scalar MinMax bounds wherever it is attached.
type SeriesBounds struct {
	Lower Series `json:"Lower"`
	Upper Series `json:"Upper"`
}

// Fixed pins a flow to the given series, step for step: lower and upper
// bound are both s. This is how measured profiles enter the model.
func Fixed(s Series) SeriesBounds {
	return SeriesBounds{Lower: s, Upper: s}
}

// Conversion identifies the directed commodity pair a transformer efficiency
// applies to. Commodity names must not contain the "->" separator.
type Conversion struct {
	From string
	To   string
}

// MarshalText encodes the pair as "from->to" so Conversion can key a JSON map.
func (c Conversion) MarshalText() ([]byte, error) {
	return []byte(c.From + "->" + c.To), nil
}

// UnmarshalText decodes the "from->to" form.
func (c *Conversion) UnmarshalText(b []byte) error {
	i := strings.Index(string(b), "->")
	if i < 0 {
		return fmt.Errorf("conversion %q: missing \"->\" separator", b)
	}
	c.From = string(b[:i])
	c.To = string(b[i+2:])
	return nil
}

func (c Conversion) String() string {
	return c.From + "->" + c.To
}

// Ref addresses one commodity port of one component, replacing the
// stringly "name.commodity" form the bus wiring is written in.
type Ref struct {
	Component string `json:"Component"`
	Commodity string `json:"Commodity"`
}

// ParseRef splits a "name.commodity" reference on its last dot, so component
// names may contain dots and spaces while commodities may not.
func ParseRef(s string) (Ref, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return Ref{}, fmt.Errorf("reference %q: want \"component.commodity\"", s)
	}
	return Ref{Component: s[:i], Commodity: s[i+1:]}, nil
}

func (r Ref) String() string {
	return r.Component + "." + r.Commodity
}

// Meta is labeling metadata carried through the dump for downstream tools.
// It never influences validation or dispatch.
type Meta struct {
	Region    string  `json:"Region,omitempty"`
	Sector    string  `json:"Sector,omitempty"`
	Carrier   string  `json:"Carrier,omitempty"`
	NodeType  string  `json:"NodeType,omitempty"`
	Latitude  float64 `json:"Latitude,omitempty"`
	Longitude float64 `json:"Longitude,omitempty"`
}

// ConfigurationError reports a malformed or internally inconsistent
// component configuration. Construction fails fast with it; no partial
// record is returned.
type ConfigurationError struct {
	Component string
	Field     string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("component %q: %s", e.Component, e.Reason)
	}
	return fmt.Sprintf("component %q: %s: %s", e.Component, e.Field, e.Reason)
}

func configErr(component, field, format string, args ...interface{}) error {
	return &ConfigurationError{
		Component: component,
		Field:     field,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// commoditySet collects declared commodities for key validation.
func commoditySet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range lists {
		for _, c := range list {
			set[c] = true
		}
	}
	return set
}

// flowOptions gathers the per-commodity option maps every component kind
// recognizes, so their validation lives in one place.
type flowOptions struct {
	rates      map[string]MinMax
	costs      map[string]Float
	emissions  map[string]Float
	timeseries map[string]SeriesBounds
	expandable map[string]bool
	expCosts   map[string]Float
	expLimits  map[string]MinMax
}

// validateFlows checks that every option key is a declared commodity and
// that bounds are ordered. expansion holds the keys the expansion maps may
// use, which for storages includes "capacity" on top of the commodities.
func validateFlows(name string, declared, expansion map[string]bool, opt flowOptions) error {
	for c, mm := range opt.rates {
		if !declared[c] {
			return configErr(name, "FlowRates", "commodity %q not declared", c)
		}
		if mm.Min > mm.Max {
			return configErr(name, "FlowRates", "%s: min %v exceeds max %v", c, mm.Min, mm.Max)
		}
	}
	for c := range opt.costs {
		if !declared[c] {
			return configErr(name, "FlowCosts", "commodity %q not declared", c)
		}
	}
	for c := range opt.emissions {
		if !declared[c] {
			return configErr(name, "FlowEmissions", "commodity %q not declared", c)
		}
	}
	for c, sb := range opt.timeseries {
		if !declared[c] {
			return configErr(name, "Timeseries", "commodity %q not declared", c)
		}
		if len(sb.Lower) != len(sb.Upper) {
			return configErr(name, "Timeseries", "%s: lower series has %d steps, upper %d",
				c, len(sb.Lower), len(sb.Upper))
		}
		for i := range sb.Lower {
			if sb.Lower[i] > sb.Upper[i] {
				return configErr(name, "Timeseries", "%s: lower exceeds upper at step %d", c, i)
			}
		}
	}
	for c := range opt.expandable {
		if !expansion[c] {
			return configErr(name, "Expandable", "commodity %q not declared", c)
		}
	}
	for c := range opt.expCosts {
		if !expansion[c] {
			return configErr(name, "ExpansionCosts", "commodity %q not declared", c)
		}
	}
	for c, mm := range opt.expLimits {
		if !expansion[c] {
			return configErr(name, "ExpansionLimits", "commodity %q not declared", c)
		}
		if mm.Min > mm.Max {
			return configErr(name, "ExpansionLimits", "%s: min %v exceeds max %v", c, mm.Min, mm.Max)
		}
	}
	return nil
}

// copy helpers keep constructed records detached from caller maps and
// canonicalize empty maps to nil so repeated builds compare deep-equal.

func copyMinMax(m map[string]MinMax) map[string]MinMax {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]MinMax, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyFloats(m map[string]Float) map[string]Float {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]Float, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBools(m map[string]bool) map[string]bool {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySeriesBounds(m map[string]SeriesBounds) map[string]SeriesBounds {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]SeriesBounds, len(m))
	for k, v := range m {
		out[k] = SeriesBounds{
			Lower: append(Series(nil), v.Lower...),
			Upper: append(Series(nil), v.Upper...),
		}
	}
	return out
}

func copyStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
