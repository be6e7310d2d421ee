/*
Package topology binds independently constructed components into a system
graph. Components declare commodities; buses declare "component.commodity"
references; the assembler resolves every reference against a lookup table
built beforehand, so a dangling name or commodity fails before any model
leaves this layer.
*/
package topology

import (
	"fmt"

	"github.com/ohowland/esm_core/internal/pkg/component"
)

// Node is a component's entry in the lookup table: the commodities it
// consumes and produces. Buses enter with no commodities of their own.
type Node struct {
	Name    string
	Inputs  []string
	Outputs []string
}

// ResolutionError reports a bus reference that does not resolve to an
// existing component and declared commodity.
type ResolutionError struct {
	Bus    string
	Ref    component.Ref
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("bus %q: reference %q: %s", e.Bus, e.Ref, e.Reason)
}

// Table is the name-indexed lookup the assembler resolves references
// against.
type Table struct {
	nodes map[string]Node
	order []string
}

// NewTable returns an empty lookup table.
func NewTable() *Table {
	return &Table{nodes: make(map[string]Node)}
}

// Add enters a node. A second node under the same name is a configuration
// defect in the model, not a resolution failure.
func (t *Table) Add(n Node) error {
	if _, exists := t.nodes[n.Name]; exists {
		return &component.ConfigurationError{
			Component: n.Name,
			Reason:    "name declared more than once",
		}
	}
	t.nodes[n.Name] = n
	t.order = append(t.order, n.Name)
	return nil
}

// Names returns the table entries in insertion order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

// Resolve checks every reference of every bus. A bus input must name a
// component output (the flow feeds the bus), a bus output a component input.
// Unreachable components pass; flagging those is the optimizer's call.
func (t *Table) Resolve(buses []component.Bus) error {
	for _, b := range buses {
		for _, r := range b.Inputs {
			if err := t.resolve(b.Name, r, false); err != nil {
				return err
			}
		}
		for _, r := range b.Outputs {
			if err := t.resolve(b.Name, r, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Table) resolve(bus string, r component.Ref, intoComponent bool) error {
	n, ok := t.nodes[r.Component]
	if !ok {
		return &ResolutionError{Bus: bus, Ref: r, Reason: "no such component"}
	}
	declared := n.Outputs
	side := "outputs"
	if intoComponent {
		declared = n.Inputs
		side = "inputs"
	}
	for _, c := range declared {
		if c == r.Commodity {
			return nil
		}
	}
	return &ResolutionError{
		Bus:    bus,
		Ref:    r,
		Reason: fmt.Sprintf("component declares no %q among its %s", r.Commodity, side),
	}
}
