package extraction

import (
	"fmt"
	"strings"
)

// Record is a live instance of a Schema. A leaf is set when present in
// values, so "" and unset stay distinct. Every group has a child record.
type Record struct {
	schema   *Schema
	values   map[string]string
	children map[string]*Record
}

// NewRecord returns an all-unset record of schema.
func NewRecord(schema *Schema) *Record {
	r := &Record{
		schema:   schema,
		values:   make(map[string]string),
		children: make(map[string]*Record),
	}
	for _, f := range schema.Fields {
		if f.IsGroup() {
			r.children[f.Name] = NewRecord(f.Schema)
		}
	}
	return r
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema {
	return r.schema
}

// resolve walks a dotted path to the record owning its last segment.
func (r *Record) resolve(path string) (*Record, Field, error) {
	parts := strings.Split(path, pathSeparator)
	cur := r
	for i, name := range parts {
		f, ok := cur.schema.Field(name)
		if !ok {
			return nil, Field{}, fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		if i == len(parts)-1 {
			return cur, f, nil
		}
		if !f.IsGroup() {
			return nil, Field{}, fmt.Errorf("%w: %s", ErrNotGroup, strings.Join(parts[:i+1], pathSeparator))
		}
		cur = cur.children[name]
	}
	return nil, Field{}, fmt.Errorf("%w: %q", ErrUnknownField, path)
}

// Set stores value at a dotted leaf path, e.g. "person.first_name".
func (r *Record) Set(path, value string) error {
	owner, f, err := r.resolve(path)
	if err != nil {
		return err
	}
	if f.IsGroup() {
		return fmt.Errorf("%w: %s", ErrNotLeaf, path)
	}
	owner.values[f.Name] = value
	return nil
}

// Unset clears a dotted leaf path.
func (r *Record) Unset(path string) error {
	owner, f, err := r.resolve(path)
	if err != nil {
		return err
	}
	if f.IsGroup() {
		return fmt.Errorf("%w: %s", ErrNotLeaf, path)
	}
	delete(owner.values, f.Name)
	return nil
}

// Get returns the value at a dotted leaf path and whether it is set.
func (r *Record) Get(path string) (string, bool) {
	owner, f, err := r.resolve(path)
	if err != nil || f.IsGroup() {
		return "", false
	}
	v, ok := owner.values[f.Name]
	return v, ok
}

// IsSet reports whether the leaf at path is set, or for a group whether
// anything below it is set.
func (r *Record) IsSet(path string) bool {
	owner, f, err := r.resolve(path)
	if err != nil {
		return false
	}
	if f.IsGroup() {
		return !owner.children[f.Name].Empty()
	}
	_, ok := owner.values[f.Name]
	return ok
}

// Child returns the nested record of a group field.
func (r *Record) Child(name string) (*Record, bool) {
	c, ok := r.children[name]
	return c, ok
}

// Empty reports whether no leaf anywhere in the record is set.
func (r *Record) Empty() bool {
	if len(r.values) > 0 {
		return false
	}
	for _, c := range r.children {
		if !c.Empty() {
			return false
		}
	}
	return true
}

// Merge folds candidate into r. A leaf is overwritten only when the
// candidate sets it to a non-empty value; groups recurse with the same rule.
// Nothing is written when the schemas differ.
func (r *Record) Merge(candidate *Record) error {
	if candidate == nil {
		return nil
	}
	if candidate.schema != r.schema {
		return fmt.Errorf("%w: %s vs %s", ErrSchemaMismatch, r.schema.Name, candidate.schema.Name)
	}
	r.merge(candidate)
	return nil
}

func (r *Record) merge(candidate *Record) {
	for _, f := range r.schema.Fields {
		if f.IsGroup() {
			if c, ok := candidate.children[f.Name]; ok && c != nil {
				r.children[f.Name].merge(c)
			}
			continue
		}
		if v, ok := candidate.values[f.Name]; ok && v != "" {
			r.values[f.Name] = v
		}
	}
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	out := &Record{
		schema:   r.schema,
		values:   make(map[string]string, len(r.values)),
		children: make(map[string]*Record, len(r.children)),
	}
	for k, v := range r.values {
		out.values[k] = v
	}
	for k, c := range r.children {
		out.children[k] = c.Clone()
	}
	return out
}

// Equal reports whether both records have the same schema and set leaves.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.schema != other.schema || len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	for k, c := range r.children {
		if !c.Equal(other.children[k]) {
			return false
		}
	}
	return true
}

// ToMap renders the record as nested maps, omitting unset leaves and
// groups with nothing set.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any)
	for _, f := range r.schema.Fields {
		if f.IsGroup() {
			if c := r.children[f.Name]; !c.Empty() {
				out[f.Name] = c.ToMap()
			}
			continue
		}
		if v, ok := r.values[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}

// Missing lists the dotted leaf paths that are unset or empty.
func (r *Record) Missing() []string {
	var out []string
	r.schema.walk("", func(path string, _ Field) {
		if v, ok := r.Get(path); !ok || v == "" {
			out = append(out, path)
		}
	})
	return out
}
