// Package idl turns a program's registered schemas and state layouts into
// an external interface description. Generation is a pure function from
// schema to document; nothing here is consulted at execution time.
package idl

import (
	"encoding/json"

	"github.com/fortiblox/x1-progkit/pkg/constraint"
	"github.com/fortiblox/x1-progkit/pkg/dispatch"
	"github.com/fortiblox/x1-progkit/pkg/layout"
)

// Document is the generated interface description.
type Document struct {
	Name         string        `json:"name"`
	Version      string        `json:"version"`
	Instructions []Instruction `json:"instructions"`
	Accounts     []State       `json:"accounts,omitempty"`
}

// Instruction describes one registered instruction.
type Instruction struct {
	Name         string    `json:"name"`
	Discriminant byte      `json:"discriminant"`
	Accounts     []Account `json:"accounts"`
	Args         []Field   `json:"args"`
}

// Account describes one account position of an instruction.
type Account struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
	Desc     string `json:"desc,omitempty"`
}

// State describes a fixed-layout state account.
type State struct {
	Name   string  `json:"name"`
	Size   int     `json:"size"`
	Fields []Field `json:"fields"`
}

// Field describes one fixed-size field.
type Field struct {
	Name   string `json:"name"`
	Size   int    `json:"size"`
	Offset int    `json:"offset"`
}

// Generate builds the document for a program from its schema registry and
// the state layouts it persists.
func Generate(name, version string, reg *dispatch.Registry, states ...*layout.Layout) *Document {
	doc := &Document{
		Name:    name,
		Version: version,
	}

	for _, s := range reg.Schemas() {
		inst := Instruction{
			Name:         s.Name,
			Discriminant: s.Discriminant,
			Accounts:     make([]Account, 0, len(s.Accounts)),
			Args:         layoutFields(s.Payload),
		}
		for i, spec := range s.Accounts {
			inst.Accounts = append(inst.Accounts, Account{
				Index:  i,
				Name:   spec.Name,
				Kind:   spec.Kind.String(),
				Signer: spec.Kind == constraint.Signer,
				// Uninitialized accounts are created in place, so the
				// description always marks them writable.
				Writable: spec.Writable || spec.Kind == constraint.Uninitialized,
				Desc:     spec.Desc,
			})
		}
		doc.Instructions = append(doc.Instructions, inst)
	}

	for _, l := range states {
		doc.Accounts = append(doc.Accounts, State{
			Name:   l.Name(),
			Size:   l.Size(),
			Fields: layoutFields(l),
		})
	}

	return doc
}

// layoutFields flattens a layout into field descriptors with offsets.
func layoutFields(l *layout.Layout) []Field {
	if l == nil {
		return []Field{}
	}
	fields := l.Fields()
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		off, _ := l.Offset(f.Name)
		out = append(out, Field{Name: f.Name, Size: f.Size, Offset: off})
	}
	return out
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
