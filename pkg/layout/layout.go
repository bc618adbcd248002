// Package layout implements the fixed-layout state codec: a typed overlay
// onto a raw account buffer with no copying, no padding and no versioning.
//
// A Layout is an ordered list of named fixed-size byte-array fields; its
// size is exactly the sum of the field sizes and every offset is known at
// construction. Views alias the underlying buffer, so a write through a
// view touches only the addressed bytes. Fields are opaque byte arrays;
// numeric interpretation is a caller convention, fixed to little-endian for
// every persisted field so storage and wire never disagree.
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrSizeMismatch indicates a buffer is smaller than the layout requires.
var ErrSizeMismatch = errors.New("account data size mismatch")

// Field is one named fixed-size segment of a layout.
type Field struct {
	Name string
	Size int
}

// Layout describes a fixed-size binary structure. Layouts are built once at
// process initialization and are immutable afterwards.
type Layout struct {
	name    string
	fields  []Field
	offsets map[string]fieldSpan
	order   []string
	size    int
}

type fieldSpan struct {
	off  int
	size int
}

// New builds a layout from ordered fields. Field names must be unique and
// sizes positive.
func New(name string, fields ...Field) (*Layout, error) {
	l := &Layout{
		name:    name,
		fields:  fields,
		offsets: make(map[string]fieldSpan, len(fields)),
		order:   make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("layout %s: field with empty name", name)
		}
		if f.Size <= 0 {
			return nil, fmt.Errorf("layout %s: field %s has non-positive size %d", name, f.Name, f.Size)
		}
		if _, dup := l.offsets[f.Name]; dup {
			return nil, fmt.Errorf("layout %s: duplicate field %s", name, f.Name)
		}
		l.offsets[f.Name] = fieldSpan{off: l.size, size: f.Size}
		l.order = append(l.order, f.Name)
		l.size += f.Size
	}
	return l, nil
}

// MustNew is New for package-level layout variables; it panics on error.
func MustNew(name string, fields ...Field) *Layout {
	l, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the layout's name.
func (l *Layout) Name() string {
	return l.name
}

// Size returns the exact byte size of the layout.
func (l *Layout) Size() int {
	return l.size
}

// Fields returns the ordered field list.
func (l *Layout) Fields() []Field {
	return l.fields
}

// Offset returns the byte offset of a named field.
func (l *Layout) Offset(name string) (int, bool) {
	span, ok := l.offsets[name]
	return span.off, ok
}

// Wrap overlays the layout onto buf, failing with ErrSizeMismatch if buf is
// shorter than the layout. Excess bytes beyond Size are reserved and left
// uninterpreted.
func (l *Layout) Wrap(buf []byte) (View, error) {
	if len(buf) < l.size {
		return View{}, fmt.Errorf("%w: %s requires %d bytes, got %d", ErrSizeMismatch, l.name, l.size, len(buf))
	}
	return View{layout: l, data: buf}, nil
}

// WrapUnchecked overlays the layout onto buf without the length check.
//
// Precondition: the caller has already validated len(buf) >= Size in the
// same call chain, typically via the account validator. Violating the
// precondition makes field access panic out of bounds. This is the explicit
// opt-in fast path; default to Wrap.
func (l *Layout) WrapUnchecked(buf []byte) View {
	return View{layout: l, data: buf}
}

// View is a typed window over a raw buffer. It aliases the buffer: reads
// and writes go straight through, and the caller upholds the single-writer
// discipline for mutable use. The codec performs no locking.
type View struct {
	layout *Layout
	data   []byte
}

// Field returns the subslice holding the named field. It panics on an
// unknown name, which is a registration-time programming error rather than
// a runtime condition.
func (v View) Field(name string) []byte {
	span, ok := v.layout.offsets[name]
	if !ok {
		panic(fmt.Sprintf("layout %s: no field %s", v.layout.name, name))
	}
	return v.data[span.off : span.off+span.size : span.off+span.size]
}

// Uint64 reads the named 8-byte field as a little-endian integer.
func (v View) Uint64(name string) uint64 {
	return binary.LittleEndian.Uint64(v.Field(name))
}

// PutUint64 writes a little-endian integer into the named 8-byte field.
func (v View) PutUint64(name string, x uint64) {
	binary.LittleEndian.PutUint64(v.Field(name), x)
}

// Uint32 reads the named 4-byte field as a little-endian integer.
func (v View) Uint32(name string) uint32 {
	return binary.LittleEndian.Uint32(v.Field(name))
}

// PutUint32 writes a little-endian integer into the named 4-byte field.
func (v View) PutUint32(name string, x uint32) {
	binary.LittleEndian.PutUint32(v.Field(name), x)
}

// Byte reads the named 1-byte field.
func (v View) Byte(name string) byte {
	return v.Field(name)[0]
}

// PutByte writes the named 1-byte field.
func (v View) PutByte(name string, b byte) {
	v.Field(name)[0] = b
}

// SetBytes copies src into the named field. src must be exactly the field
// size.
func (v View) SetBytes(name string, src []byte) {
	f := v.Field(name)
	if len(src) != len(f) {
		panic(fmt.Sprintf("layout %s: field %s is %d bytes, got %d", v.layout.name, name, len(f), len(src)))
	}
	copy(f, src)
}
