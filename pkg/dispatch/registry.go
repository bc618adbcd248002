// Package dispatch decodes raw instructions, looks up their schema, runs
// account and payload validation and routes to the registered handler.
//
// The registry replaces the code-generation step of macro-driven program
// frameworks with a plain data table: schemas are values, registration is
// an explicit startup call, and the dispatcher is one generic function over
// the table.
package dispatch

import (
	"fmt"
	"sort"

	"github.com/fortiblox/x1-progkit/pkg/constraint"
	"github.com/fortiblox/x1-progkit/pkg/layout"
	"github.com/fortiblox/x1-progkit/pkg/runtime"
)

// Handler executes an instruction's business logic over validated accounts
// and an exact-size payload. Accounts arrive in schema order; the payload
// slice aliases the raw instruction data.
type Handler func(ctx *runtime.InvokeContext, accounts []*runtime.AccountHandle, payload []byte) error

// Schema declares one instruction: its discriminant byte, the ordered
// account constraints and the fixed payload layout. A nil Payload means the
// instruction carries no data beyond the discriminant.
type Schema struct {
	Discriminant byte
	Name         string
	Accounts     []constraint.Spec
	Payload      *layout.Layout
	Handler      Handler
}

// PayloadLen returns the exact payload size the schema requires.
func (s *Schema) PayloadLen() int {
	if s.Payload == nil {
		return 0
	}
	return s.Payload.Size()
}

// Registry is the static table of instruction schemas for one program.
// Build it once at process initialization; lookups after that are
// read-only and need no locking.
type Registry struct {
	entries map[byte]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[byte]*Schema),
	}
}

// Register adds a schema, rejecting duplicate discriminants at registration
// time so a collision is a startup failure rather than a routing surprise.
func (r *Registry) Register(s *Schema) error {
	if prev, ok := r.entries[s.Discriminant]; ok {
		return fmt.Errorf("%w: %d already registered as %s", ErrDuplicateDiscriminant, s.Discriminant, prev.Name)
	}
	if s.Handler == nil {
		return fmt.Errorf("schema %s: nil handler", s.Name)
	}
	r.entries[s.Discriminant] = s
	return nil
}

// MustRegister is Register for startup wiring; it panics on error.
func (r *Registry) MustRegister(s *Schema) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Lookup returns the schema registered under a discriminant.
func (r *Registry) Lookup(discriminant byte) (*Schema, error) {
	s, ok := r.entries[discriminant]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscriminant, discriminant)
	}
	return s, nil
}

// Schemas returns all registered schemas ordered by discriminant.
func (r *Registry) Schemas() []*Schema {
	out := make([]*Schema, 0, len(r.entries))
	for _, s := range r.entries {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Discriminant < out[j].Discriminant
	})
	return out
}
