package tro

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Value is a model value: String, Int, Float, Bool, *List or *Map.
type Value interface {
	// Native converts the value to plain Go types for template execution.
	Native() any
}

type (
	String string
	Int    int
	Float  float64
	Bool   bool
)

func (s String) Native() any { return string(s) }
func (i Int) Native() any    { return int(i) }
func (f Float) Native() any  { return float64(f) }
func (b Bool) Native() any   { return bool(b) }

// List is an ordered sequence of values.
type List struct {
	items []Value
}

// NewList returns a list holding items.
func NewList(items ...Value) *List {
	return &List{items: items}
}

// Strings builds a list of String values.
func Strings(ss ...string) *List {
	l := &List{items: make([]Value, 0, len(ss))}
	for _, s := range ss {
		l.items = append(l.items, String(s))
	}
	return l
}

// Append adds v to the end of the list.
func (l *List) Append(v Value) {
	l.items = append(l.items, v)
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the i-th item.
func (l *List) At(i int) Value {
	return l.items[i]
}

// Items returns a copy of the items.
func (l *List) Items() []Value {
	return slices.Clone(l.items)
}

func (l *List) Native() any {
	out := make([]any, len(l.items))
	for i, v := range l.items {
		out[i] = v.Native()
	}
	return out
}

func (l *List) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// Map is a string-keyed map that remembers insertion order.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores v under key. A replaced key keeps its original position.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	return slices.Clone(m.keys)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Native converts the map, and everything below it, to map[string]any.
func (m *Map) Native() any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k].Native()
	}
	return out
}

// MarshalJSON writes entries in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
