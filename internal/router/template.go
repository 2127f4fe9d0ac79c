package router

import (
	"fmt"
	"strings"
)

type segment struct {
	text  string
	isVar bool
}

// Template is a prompt with {name} placeholders. "{{" and "}}" render a
// literal brace. Variables missing at render time render empty.
type Template struct {
	raw      string
	segments []segment
	names    []string
}

// ParseTemplate splits raw into literal text and placeholders. The syntax is
// that of Python str.format with plain field names: "{name}" substitutes and
// "{{" and "}}" are literal braces. Format specs, conversions and attribute
// lookups ("{x:>5}", "{x!r}", "{x.y}") are rejected as malformed. Prompts
// written for str.format therefore parse unchanged.
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}
	seen := make(map[string]struct{})

	var lit strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '{' && i+1 < len(raw) && raw[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(raw) && raw[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			name := raw[i+1 : i+1+end]
			if !validName(name) {
				return nil, fmt.Errorf("%w: invalid placeholder %q", ErrMalformedTemplate, name)
			}
			if lit.Len() > 0 {
				t.segments = append(t.segments, segment{text: lit.String()})
				lit.Reset()
			}
			t.segments = append(t.segments, segment{text: name, isVar: true})
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				t.names = append(t.names, name)
			}
			i += end + 1
		case c == '}':
			return nil, fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			lit.WriteByte(c)
		}
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{text: lit.String()})
	}
	return t, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Placeholders lists the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.names...)
}

// Check fails when the template uses a name outside allowed.
func (t *Template) Check(allowed map[string]struct{}) error {
	for _, name := range t.names {
		if _, ok := allowed[name]; !ok {
			return fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, name)
		}
	}
	return nil
}

// Render substitutes vars into the template.
func (t *Template) Render(vars map[string]string) string {
	var sb strings.Builder
	sb.Grow(len(t.raw))
	for _, s := range t.segments {
		if s.isVar {
			sb.WriteString(vars[s.text])
			continue
		}
		sb.WriteString(s.text)
	}
	return sb.String()
}

// String returns the unparsed template.
func (t *Template) String() string {
	return t.raw
}
