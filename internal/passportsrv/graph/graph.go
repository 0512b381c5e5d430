// Package graph derives the relationship view of a passport: the product, its
// manufacturer, the suppliers behind its supply-chain links, the component
// items they supply, and the most recent slice of its lifecycle events.
package graph

import (
	"fmt"
	"strings"

	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
	"github.com/openpassport/dppsrv/internal/passportsrv/supplier"
)

const (
	NodeTypeProduct        = "product"
	NodeTypeManufacturer   = "manufacturer"
	NodeTypeSupplier       = "supplier"
	NodeTypeComponent      = "component"
	NodeTypeLifecycleEvent = "lifecycle_event"
)

const (
	EdgeManufacturedBy = "manufactured_by"
	EdgeSuppliesItem   = "supplies_item"
	EdgeIsPartOf       = "is_part_of"
	EdgeUnderwentEvent = "underwent_event"
)

// maxLifecycleEvents caps how many lifecycle events appear in the graph.
const maxLifecycleEvents = 3

type Node struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Label string         `json:"label"`
	Data  map[string]any `json:"data,omitempty"`
}

type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Derive builds the node and edge sets for one passport. Suppliers are
// resolved against the registry at derivation time; an unresolved supplier is
// tolerated — the component node and its is_part_of edge are still emitted.
// Output order is deterministic and follows the record's own ordering.
func Derive(p *passport.DigitalProductPassport, reg *supplier.Registry) *Graph {
	g := &Graph{
		Nodes: []Node{},
		Edges: []Edge{},
	}

	g.Nodes = append(g.Nodes, Node{
		ID:    p.ID,
		Type:  NodeTypeProduct,
		Label: p.ProductName,
		Data: map[string]any{
			"category":    p.Category,
			"modelNumber": p.ModelNumber,
			"gtin":        p.GTIN,
		},
	})

	if p.Manufacturer.Name != "" {
		mfrID := Slug(p.Manufacturer.Name)
		g.Nodes = append(g.Nodes, Node{
			ID:    mfrID,
			Type:  NodeTypeManufacturer,
			Label: p.Manufacturer.Name,
		})
		g.Edges = append(g.Edges, Edge{Source: mfrID, Target: p.ID, Label: EdgeManufacturedBy})
	}

	seenSuppliers := make(map[string]bool)
	for i, link := range p.SupplyChainLinks {
		sup, resolved := reg.Resolve(link.SupplierID)
		if resolved && !seenSuppliers[sup.ID] {
			seenSuppliers[sup.ID] = true
			g.Nodes = append(g.Nodes, Node{
				ID:    sup.ID,
				Type:  NodeTypeSupplier,
				Label: sup.Name,
				Data: map[string]any{
					"location":          sup.Location,
					"materialsSupplied": sup.MaterialsSupplied,
				},
			})
		}
		// the index disambiguates duplicate item names within one record
		componentID := fmt.Sprintf("%s_%s_%d", p.ID, Slug(link.SuppliedItem), i)
		g.Nodes = append(g.Nodes, Node{
			ID:    componentID,
			Type:  NodeTypeComponent,
			Label: link.SuppliedItem,
		})
		if resolved {
			g.Edges = append(g.Edges, Edge{Source: sup.ID, Target: componentID, Label: EdgeSuppliesItem})
		}
		g.Edges = append(g.Edges, Edge{Source: componentID, Target: p.ID, Label: EdgeIsPartOf})
	}

	events := p.LifecycleEvents
	if len(events) > maxLifecycleEvents {
		events = events[:maxLifecycleEvents]
	}
	for _, ev := range events {
		eventID := fmt.Sprintf("%s_event_%s", p.ID, ev.ID)
		g.Nodes = append(g.Nodes, Node{
			ID:    eventID,
			Type:  NodeTypeLifecycleEvent,
			Label: ev.Type,
			Data: map[string]any{
				"timestamp": ev.Timestamp,
				"location":  ev.Location,
			},
		})
		g.Edges = append(g.Edges, Edge{Source: p.ID, Target: eventID, Label: EdgeUnderwentEvent})
	}

	return g
}

// Slug normalizes a display string into a lowercase, whitespace-free key.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
