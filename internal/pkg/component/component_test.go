package component

import (
	"encoding/json"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestFloatMarshalInf(t *testing.T) {
	b, err := json.Marshal(Inf)
	assert.NilError(t, err)
	assert.Equal(t, string(b), `"+inf"`)

	b, err = json.Marshal(-Inf)
	assert.NilError(t, err)
	assert.Equal(t, string(b), `"-inf"`)

	b, err = json.Marshal(Float(42.5))
	assert.NilError(t, err)
	assert.Equal(t, string(b), "42.5")
}

func TestFloatUnmarshalInf(t *testing.T) {
	var f Float

	assert.NilError(t, json.Unmarshal([]byte(`"+inf"`), &f))
	assert.Equal(t, f, Inf)

	assert.NilError(t, json.Unmarshal([]byte(`"inf"`), &f))
	assert.Equal(t, f, Inf)

	assert.NilError(t, json.Unmarshal([]byte(`"-inf"`), &f))
	assert.Equal(t, f, -Inf)

	assert.NilError(t, json.Unmarshal([]byte(`99.25`), &f))
	assert.Equal(t, f, Float(99.25))

	assert.Assert(t, json.Unmarshal([]byte(`"not a number"`), &f) != nil)
}

func TestFloatRoundTrip(t *testing.T) {
	in := []Float{0, 1.5, -3, Inf, -Inf}
	b, err := json.Marshal(in)
	assert.NilError(t, err)

	var out []Float
	assert.NilError(t, json.Unmarshal(b, &out))
	assert.DeepEqual(t, in, out)
}

func TestConversionText(t *testing.T) {
	c := Conversion{From: "gas", To: "electricity"}
	b, err := c.MarshalText()
	assert.NilError(t, err)
	assert.Equal(t, string(b), "gas->electricity")

	var back Conversion
	assert.NilError(t, back.UnmarshalText(b))
	assert.Equal(t, back, c)

	assert.Assert(t, back.UnmarshalText([]byte("no separator")) != nil)
}

func TestConversionAsMapKey(t *testing.T) {
	m := map[Conversion]Float{
		{From: "gas", To: "electricity"}: 0.4,
		{From: "gas", To: "hot_water"}:   0.3,
	}
	b, err := json.Marshal(m)
	assert.NilError(t, err)

	var back map[Conversion]Float
	assert.NilError(t, json.Unmarshal(b, &back))
	assert.DeepEqual(t, m, back)
}

func TestParseRef(t *testing.T) {
	r, err := ParseRef("Demand.electricity")
	assert.NilError(t, err)
	assert.Equal(t, r.Component, "Demand")
	assert.Equal(t, r.Commodity, "electricity")

	// component names may contain spaces and dots; the last dot splits
	r, err = ParseRef("heat power plant.hot_water")
	assert.NilError(t, err)
	assert.Equal(t, r.Component, "heat power plant")
	assert.Equal(t, r.Commodity, "hot_water")

	r, err = ParseRef("a.b.c")
	assert.NilError(t, err)
	assert.Equal(t, r.Component, "a.b")
	assert.Equal(t, r.Commodity, "c")
}

func TestParseRefFail(t *testing.T) {
	_, err := ParseRef("nodot")
	assert.Assert(t, err != nil)

	_, err = ParseRef(".electricity")
	assert.Assert(t, err != nil)

	_, err = ParseRef("Demand.")
	assert.Assert(t, err != nil)
}

func TestFixed(t *testing.T) {
	s := Series{1, 2, 3}
	sb := Fixed(s)
	assert.DeepEqual(t, sb.Lower, s)
	assert.DeepEqual(t, sb.Upper, s)
}

func TestNewSource(t *testing.T) {
	s, err := NewSource("solar", SourceConfig{
		Outputs:   []string{"electricity"},
		FlowRates: map[string]MinMax{"electricity": {Min: 0, Max: 100}},
		FlowCosts: map[string]Float{"electricity": 9},
	})
	assert.NilError(t, err)
	assert.Equal(t, s.Name, "solar")
	assert.Equal(t, s.FlowRates["electricity"].Max, Float(100))
}

func TestNewSourceUndeclaredCommodity(t *testing.T) {
	_, err := NewSource("solar", SourceConfig{
		Outputs:   []string{"electricity"},
		FlowRates: map[string]MinMax{"hot_water": {Min: 0, Max: 100}},
	})
	var cfgErr *ConfigurationError
	assert.Assert(t, errors.As(err, &cfgErr))
	assert.Equal(t, cfgErr.Component, "solar")
	assert.Equal(t, cfgErr.Field, "FlowRates")
}

func TestNewSourceBoundsOutOfOrder(t *testing.T) {
	_, err := NewSource("solar", SourceConfig{
		Outputs:   []string{"electricity"},
		FlowRates: map[string]MinMax{"electricity": {Min: 10, Max: 2}},
	})
	assert.Assert(t, err != nil)
}

func TestNewSourceNoOutputs(t *testing.T) {
	_, err := NewSource("solar", SourceConfig{})
	assert.Assert(t, err != nil)
}

func TestNewSourceDetachedFromConfig(t *testing.T) {
	rates := map[string]MinMax{"electricity": {Min: 0, Max: 10}}
	s, err := NewSource("solar", SourceConfig{
		Outputs:   []string{"electricity"},
		FlowRates: rates,
	})
	assert.NilError(t, err)

	// mutating the caller's map must not reach the record
	rates["electricity"] = MinMax{Min: 0, Max: 999}
	assert.Equal(t, s.FlowRates["electricity"].Max, Float(10))
}

func TestNewSinkNoInputs(t *testing.T) {
	_, err := NewSink("demand", SinkConfig{})
	assert.Assert(t, err != nil)
}

func TestNewSinkFixedSeries(t *testing.T) {
	s, err := NewSink("demand", SinkConfig{
		Inputs:     []string{"electricity"},
		FlowRates:  map[string]MinMax{"electricity": {Min: 0, Max: 50}},
		Timeseries: map[string]SeriesBounds{"electricity": Fixed(Series{10, 20, 30})},
	})
	assert.NilError(t, err)
	assert.Equal(t, len(s.Timeseries["electricity"].Lower), 3)
}

func TestNewTransformer(t *testing.T) {
	tr, err := NewTransformer("chp", TransformerConfig{
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity", "hot_water"},
		Conversions: map[Conversion]Float{
			{From: "gas", To: "electricity"}: 0.3773,
			{From: "gas", To: "hot_water"}:   0.3,
		},
		FlowRates: map[string]MinMax{
			"gas":         {Min: 0, Max: Inf},
			"electricity": {Min: 0, Max: 400},
		},
	})
	assert.NilError(t, err)
	assert.Equal(t, tr.Conversions[Conversion{From: "gas", To: "electricity"}], Float(0.3773))
}

func TestNewTransformerConversionUndeclaredInput(t *testing.T) {
	// conversion pairs must reference declared commodities on both ends
	_, err := NewTransformer("chp", TransformerConfig{
		Inputs:  []string{"waste"},
		Outputs: []string{"electricity"},
		Conversions: map[Conversion]Float{
			{From: "gas", To: "electricity"}: 0.3773,
		},
	})
	var cfgErr *ConfigurationError
	assert.Assert(t, errors.As(err, &cfgErr))
	assert.Equal(t, cfgErr.Field, "Conversions")
}

func TestNewTransformerConversionUndeclaredOutput(t *testing.T) {
	_, err := NewTransformer("chp", TransformerConfig{
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity"},
		Conversions: map[Conversion]Float{
			{From: "gas", To: "hot_water"}: 0.3,
		},
	})
	assert.Assert(t, err != nil)
}

func TestNewTransformerNegativeEfficiency(t *testing.T) {
	_, err := NewTransformer("chp", TransformerConfig{
		Inputs:  []string{"gas"},
		Outputs: []string{"electricity"},
		Conversions: map[Conversion]Float{
			{From: "gas", To: "electricity"}: -0.1,
		},
	})
	assert.Assert(t, err != nil)
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage("battery", StorageConfig{
		Input:      "electricity",
		Output:     "electricity",
		Capacity:   1,
		InitialSOC: 1,
		FlowRates:  map[string]MinMax{"electricity": {Min: 0, Max: Inf}},
		ExpansionCosts: map[string]Float{
			CapacityKey: 130,
		},
	})
	assert.NilError(t, err)
	assert.Equal(t, s.Capacity, Float(1))
}

func TestNewStorageBadSOC(t *testing.T) {
	_, err := NewStorage("battery", StorageConfig{
		Input:      "electricity",
		Output:     "electricity",
		Capacity:   1,
		InitialSOC: 2,
	})
	assert.Assert(t, err != nil)
}

func TestNewStorageNegativeCapacity(t *testing.T) {
	_, err := NewStorage("battery", StorageConfig{
		Input:    "electricity",
		Output:   "electricity",
		Capacity: -1,
	})
	assert.Assert(t, err != nil)
}

func TestNewStorageCapacityKeyOnlyInExpansion(t *testing.T) {
	// "capacity" addresses the storage volume; it is not a flow commodity
	_, err := NewStorage("battery", StorageConfig{
		Input:     "electricity",
		Output:    "electricity",
		Capacity:  1,
		FlowRates: map[string]MinMax{CapacityKey: {Min: 0, Max: 1}},
	})
	assert.Assert(t, err != nil)
}

func TestNewBus(t *testing.T) {
	b, err := NewBus("powerline", BusConfig{
		Inputs:  []string{"solar.electricity", "wind.electricity"},
		Outputs: []string{"demand.electricity"},
	})
	assert.NilError(t, err)
	assert.Equal(t, len(b.Inputs), 2)
	assert.Equal(t, b.Inputs[0], Ref{Component: "solar", Commodity: "electricity"})
	assert.Equal(t, b.Outputs[0], Ref{Component: "demand", Commodity: "electricity"})
}

func TestNewBusEmpty(t *testing.T) {
	_, err := NewBus("powerline", BusConfig{})
	assert.Assert(t, err != nil)
}

func TestNewBusMalformedRef(t *testing.T) {
	_, err := NewBus("powerline", BusConfig{
		Inputs: []string{"solar"},
	})
	var cfgErr *ConfigurationError
	assert.Assert(t, errors.As(err, &cfgErr))
	assert.Equal(t, cfgErr.Component, "powerline")
}

func TestTimeseriesShapeMismatch(t *testing.T) {
	_, err := NewSource("solar", SourceConfig{
		Outputs: []string{"electricity"},
		Timeseries: map[string]SeriesBounds{
			"electricity": {Lower: Series{0, 0}, Upper: Series{1, 1, 1}},
		},
	})
	assert.Assert(t, err != nil)
}

func TestTimeseriesLowerAboveUpper(t *testing.T) {
	_, err := NewSource("solar", SourceConfig{
		Outputs: []string{"electricity"},
		Timeseries: map[string]SeriesBounds{
			"electricity": {Lower: Series{5}, Upper: Series{1}},
		},
	})
	assert.Assert(t, err != nil)
}
