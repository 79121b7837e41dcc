// Copyright 2025 the voltshift authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manifest reads, merges and writes the project's package.json
// while preserving the order of every field it does not touch. The
// document is an ordered key/value view over raw JSON: fields the
// merger never looks at round-trip untouched.
package manifest

import (
	"bytes"
	"encoding/json"

	"gitlab.com/tozd/go/errors"
)

// 📚 Document is an order-preserving view of a JSON object. Top-level
// values are kept raw; only the fields the merger cares about are ever
// decoded.
type Document struct {
	keys   []string
	fields map[string]json.RawMessage
}

// 🗺️ Map is an ordered string-to-string map, the shape of the scripts
// and dependency blocks.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Get returns the value for name and whether it is present.
func (m *Map) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Set inserts or updates name. New names are appended, preserving
// insertion order.
func (m *Map) Set(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Keys returns the names in order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// marshal writes the map as a compact JSON object in key order.
func (m *Map) marshal() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, errors.Errorf("marshaling key %q: %w", k, err)
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, errors.Errorf("marshaling value for %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// parseMap decodes a JSON object of string values, preserving key order.
func parseMap(raw json.RawMessage) (*Map, error) {
	m := NewMap()
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("reading map open: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("reading map key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, errors.Errorf("decoding value for %q: %w", key, err)
		}
		m.Set(key, value)
	}

	return m, nil
}

// 📖 Parse decodes data into an ordered document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{fields: make(map[string]json.RawMessage)}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("reading document open: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("manifest is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("reading field name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("expected field name, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Errorf("decoding field %q: %w", key, err)
		}
		doc.SetRaw(key, raw)
	}

	return doc, nil
}

// Has reports whether the document has a top-level field named key.
func (d *Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Raw returns the raw value of a top-level field.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	raw, ok := d.fields[key]
	return raw, ok
}

// SetRaw inserts or updates a top-level field. New fields are appended.
func (d *Document) SetRaw(key string, raw json.RawMessage) {
	if _, ok := d.fields[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = raw
}

// String returns a top-level field decoded as a string. A present but
// non-string field reports not-ok.
func (d *Document) String(key string) (string, bool) {
	raw, ok := d.fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetString sets a top-level field to a string value.
func (d *Document) SetString(key, value string) {
	raw, _ := json.Marshal(value)
	d.SetRaw(key, raw)
}

// Map returns a top-level field decoded as an ordered string map. An
// absent field returns an empty map.
func (d *Document) Map(key string) (*Map, error) {
	raw, ok := d.fields[key]
	if !ok {
		return NewMap(), nil
	}
	m, err := parseMap(raw)
	if err != nil {
		return nil, errors.Errorf("parsing %q: %w", key, err)
	}
	return m, nil
}

// SetMap sets a top-level field from an ordered string map.
func (d *Document) SetMap(key string, m *Map) error {
	raw, err := m.marshal()
	if err != nil {
		return err
	}
	d.SetRaw(key, raw)
	return nil
}

// Keys returns the top-level field names in order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// 📝 MarshalIndent renders the document with two-space indentation and a
// trailing newline, the way npm writes package.json.
func (d *Document) MarshalIndent() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, errors.Errorf("marshaling field name %q: %w", k, err)
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(d.fields[k])
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, errors.Errorf("indenting manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
