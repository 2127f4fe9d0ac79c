package extraction

import (
	"fmt"
	"strings"
)

// Field describes one member of a Schema. A field with a nested Schema is a
// group; every other field is an optional string leaf.
type Field struct {
	Name        string
	Description string
	MaxLength   int     // 0 means unbounded; leaves only
	Schema      *Schema // non-nil for groups
}

// Leaf declares a string field.
func Leaf(name, description string) Field {
	return Field{Name: name, Description: description}
}

// Group declares a nested field.
func Group(name, description string, schema *Schema) Field {
	return Field{Name: name, Description: description, Schema: schema}
}

// WithMaxLength bounds a leaf, counted in characters.
func (f Field) WithMaxLength(n int) Field {
	f.MaxLength = n
	return f
}

// IsGroup reports whether f nests another schema.
func (f Field) IsGroup() bool {
	return f.Schema != nil
}

// Schema is a statically declared, ordered list of fields.
type Schema struct {
	Name        string
	Description string
	Fields      []Field

	index map[string]int
}

// NewSchema validates fields and builds a schema.
func NewSchema(name, description string, fields ...Field) (*Schema, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: schema name is empty", ErrInvalidSchema)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: schema %s has no fields", ErrInvalidSchema, name)
	}

	s := &Schema{Name: name, Description: description, Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		switch {
		case f.Name == "" || strings.Contains(f.Name, pathSeparator):
			return nil, fmt.Errorf("%w: schema %s field %d has an invalid name %q", ErrInvalidSchema, name, i, f.Name)
		case f.MaxLength < 0:
			return nil, fmt.Errorf("%w: %s.%s has a negative max length", ErrInvalidSchema, name, f.Name)
		case f.IsGroup() && f.MaxLength > 0:
			return nil, fmt.Errorf("%w: %s.%s is a group and cannot have a max length", ErrInvalidSchema, name, f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: schema %s declares %q twice", ErrInvalidSchema, name, f.Name)
		}
		s.index[f.Name] = i
	}
	return s, nil
}

// MustSchema is NewSchema for package-level declarations.
func MustSchema(name, description string, fields ...Field) *Schema {
	s, err := NewSchema(name, description, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// LeafPaths lists every leaf as a dotted path, in declaration order.
func (s *Schema) LeafPaths() []string {
	var out []string
	s.walk("", func(path string, _ Field) {
		out = append(out, path)
	})
	return out
}

func (s *Schema) walk(prefix string, fn func(path string, f Field)) {
	for _, f := range s.Fields {
		path := joinPath(prefix, f.Name)
		if f.IsGroup() {
			f.Schema.walk(path, fn)
			continue
		}
		fn(path, f)
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + pathSeparator + name
}
