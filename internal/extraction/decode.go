package extraction

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// DecodeCandidate builds a record from loosely typed model output.
// Unknown keys are ignored, null leaves stay unset, numbers and booleans are
// stringified. Values that cannot be used (too long, wrong shape) are left
// unset and reported as violations; they never fail the decode.
func DecodeCandidate(schema *Schema, raw map[string]any) (*Record, []Violation) {
	r := NewRecord(schema)
	var violations []Violation
	r.decode("", raw, &violations)
	return r, violations
}

func (r *Record) decode(prefix string, raw map[string]any, violations *[]Violation) {
	for _, f := range r.schema.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			continue
		}
		path := joinPath(prefix, f.Name)

		if f.IsGroup() {
			nested, ok := v.(map[string]any)
			if !ok {
				*violations = append(*violations, Violation{Path: path, Reason: fmt.Sprintf("expected an object, got %T", v)})
				continue
			}
			r.children[f.Name].decode(path, nested, violations)
			continue
		}

		s, ok := scalarString(v)
		if !ok {
			*violations = append(*violations, Violation{Path: path, Reason: fmt.Sprintf("expected a string, got %T", v)})
			continue
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
			*violations = append(*violations, Violation{Path: path, Reason: fmt.Sprintf("longer than %d characters", f.MaxLength)})
			continue
		}
		r.values[f.Name] = s
	}
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
