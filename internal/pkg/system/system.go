/*
Package system aggregates components, a timeframe and global constraints
into one immutable energy system model, validates the whole against itself,
and serializes it for the downstream optimization and visualization tools.
A System that came out of New holds together: names are unique, every bus
reference resolves, every attached series spans the timeframe.
*/
package system

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ohowland/esm_core/internal/pkg/component"
	"github.com/ohowland/esm_core/internal/pkg/timeframe"
	"github.com/ohowland/esm_core/internal/pkg/topology"
)

// GlobalConstraints are scalar limits applying across the whole system and
// all time steps, e.g. {"emissions": 8}. A missing limit means unbounded.
type GlobalConstraints struct {
	Name   string                     `json:"Name,omitempty"`
	Limits map[string]component.Float `json:"Limits,omitempty"`
}

// Limit returns the named limit, or +Inf when none is set.
func (g GlobalConstraints) Limit(name string) component.Float {
	if v, ok := g.Limits[name]; ok {
		return v
	}
	return component.Inf
}

// Document is the serialized form of a System: everything except the
// process id, so identical models dump to identical bytes.
type Document struct {
	UID               string                  `json:"UID"`
	Busses            []component.Bus         `json:"Busses,omitempty"`
	Sources           []component.Source      `json:"Sources,omitempty"`
	Sinks             []component.Sink        `json:"Sinks,omitempty"`
	Transformers      []component.Transformer `json:"Transformers,omitempty"`
	Storages          []component.Storage     `json:"Storages,omitempty"`
	Timeframe         timeframe.Timeframe     `json:"Timeframe"`
	GlobalConstraints GlobalConstraints       `json:"GlobalConstraints"`
}

// Config carries the full component set for a system under construction.
type Config struct {
	Busses            []component.Bus
	Sources           []component.Source
	Sinks             []component.Sink
	Transformers      []component.Transformer
	Storages          []component.Storage
	Timeframe         timeframe.Timeframe
	GlobalConstraints GlobalConstraints
}

// System is the root model container.
type System struct {
	pid uuid.UUID
	doc Document
}

// DataShapeError reports a time series whose length does not match the
// system timeframe.
type DataShapeError struct {
	Component string
	Commodity string
	Want      int
	Got       int
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("component %q: series for %q spans %d steps, timeframe has %d",
		e.Component, e.Commodity, e.Got, e.Want)
}

// New validates the assembled configuration and returns the finished
// system. On any defect no system is returned; there are no partial models.
func New(uid string, cfg Config) (*System, error) {
	doc := Document{
		UID:               uid,
		Busses:            append([]component.Bus(nil), cfg.Busses...),
		Sources:           append([]component.Source(nil), cfg.Sources...),
		Sinks:             append([]component.Sink(nil), cfg.Sinks...),
		Transformers:      append([]component.Transformer(nil), cfg.Transformers...),
		Storages:          append([]component.Storage(nil), cfg.Storages...),
		Timeframe:         cfg.Timeframe,
		GlobalConstraints: cfg.GlobalConstraints,
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func fromDocument(doc Document) (*System, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	return &System{pid: pid, doc: doc}, nil
}

// PID is the process id of this in-memory instance. It is assigned at
// construction and not part of the dump; two builds of the same model share
// a document but not a PID.
func (s *System) PID() uuid.UUID {
	return s.pid
}

// UID is the model's label.
func (s *System) UID() string {
	return s.doc.UID
}

// Document returns the serializable form.
func (s *System) Document() Document {
	return s.doc
}

// Busses returns the bus records in declaration order.
func (s *System) Busses() []component.Bus {
	return s.doc.Busses
}

// Sources returns the source records in declaration order.
func (s *System) Sources() []component.Source {
	return s.doc.Sources
}

// Sinks returns the sink records in declaration order.
func (s *System) Sinks() []component.Sink {
	return s.doc.Sinks
}

// Transformers returns the transformer records in declaration order.
func (s *System) Transformers() []component.Transformer {
	return s.doc.Transformers
}

// Storages returns the storage records in declaration order.
func (s *System) Storages() []component.Storage {
	return s.doc.Storages
}

// Timeframe returns the system time axis.
func (s *System) Timeframe() timeframe.Timeframe {
	return s.doc.Timeframe
}

// GlobalConstraints returns the system-wide limits.
func (s *System) GlobalConstraints() GlobalConstraints {
	return s.doc.GlobalConstraints
}

// Nodes lists every component name: busses, sources, sinks, transformers,
// storages, in declaration order within each kind.
func (s *System) Nodes() []string {
	names := make([]string, 0,
		len(s.doc.Busses)+len(s.doc.Sources)+len(s.doc.Sinks)+
			len(s.doc.Transformers)+len(s.doc.Storages))
	for _, c := range s.doc.Busses {
		names = append(names, c.Name)
	}
	for _, c := range s.doc.Sources {
		names = append(names, c.Name)
	}
	for _, c := range s.doc.Sinks {
		names = append(names, c.Name)
	}
	for _, c := range s.doc.Transformers {
		names = append(names, c.Name)
	}
	for _, c := range s.doc.Storages {
		names = append(names, c.Name)
	}
	return names
}

// Graph assembles the adjacency view of the system topology.
func (s *System) Graph() (*topology.Graph, error) {
	table, err := lookupTable(s.doc)
	if err != nil {
		return nil, err
	}
	return topology.BuildGraph(table, s.doc.Busses)
}

// validate runs the whole-system checks: record invariants (for documents
// that arrived from disk rather than from the constructors), unique names,
// series shape against the timeframe, reference resolution.
func validate(doc Document) error {
	if doc.UID == "" {
		return &component.ConfigurationError{Reason: "system uid must not be empty"}
	}
	if doc.Timeframe.Len() <= 0 {
		return &component.ConfigurationError{Component: doc.UID, Reason: "timeframe has no steps"}
	}
	if err := validateRecords(doc); err != nil {
		return err
	}
	if err := validateShapes(doc); err != nil {
		return err
	}
	table, err := lookupTable(doc)
	if err != nil {
		return err
	}
	return table.Resolve(doc.Busses)
}

func validateRecords(doc Document) error {
	for _, c := range doc.Busses {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range doc.Sources {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range doc.Sinks {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range doc.Transformers {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, c := range doc.Storages {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateShapes(doc Document) error {
	want := doc.Timeframe.Len()
	check := func(name string, ts map[string]component.SeriesBounds) error {
		for commodity, sb := range ts {
			if len(sb.Lower) != want {
				return &DataShapeError{Component: name, Commodity: commodity, Want: want, Got: len(sb.Lower)}
			}
			if len(sb.Upper) != want {
				return &DataShapeError{Component: name, Commodity: commodity, Want: want, Got: len(sb.Upper)}
			}
		}
		return nil
	}
	for _, c := range doc.Sources {
		if err := check(c.Name, c.Timeseries); err != nil {
			return err
		}
	}
	for _, c := range doc.Sinks {
		if err := check(c.Name, c.Timeseries); err != nil {
			return err
		}
	}
	for _, c := range doc.Transformers {
		if err := check(c.Name, c.Timeseries); err != nil {
			return err
		}
	}
	for _, c := range doc.Storages {
		if err := check(c.Name, c.Timeseries); err != nil {
			return err
		}
	}
	return nil
}

func lookupTable(doc Document) (*topology.Table, error) {
	table := topology.NewTable()
	for _, c := range doc.Busses {
		if err := table.Add(topology.Node{Name: c.Name}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Sources {
		if err := table.Add(topology.Node{Name: c.Name, Outputs: c.Outputs}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Sinks {
		if err := table.Add(topology.Node{Name: c.Name, Inputs: c.Inputs}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Transformers {
		if err := table.Add(topology.Node{Name: c.Name, Inputs: c.Inputs, Outputs: c.Outputs}); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Storages {
		n := topology.Node{
			Name:    c.Name,
			Inputs:  []string{c.Input},
			Outputs: []string{c.Output},
		}
		if err := table.Add(n); err != nil {
			return nil, err
		}
	}
	return table, nil
}
