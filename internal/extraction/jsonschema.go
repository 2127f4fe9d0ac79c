package extraction

// JSONSchema renders schema as a JSON Schema object. No property is
// required: the model reports only what the passage mentions.
func JSONSchema(schema *Schema) map[string]any {
	props := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		if f.IsGroup() {
			nested := JSONSchema(f.Schema)
			if f.Description != "" {
				nested["description"] = f.Description
			}
			props[f.Name] = nested
			continue
		}

		prop := map[string]any{"type": "string"}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		if f.MaxLength > 0 {
			prop["maxLength"] = f.MaxLength
		}
		props[f.Name] = prop
	}

	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if schema.Description != "" {
		out["description"] = schema.Description
	}
	return out
}

// toolParameters wraps the schema as the argument list of the extraction tool.
func toolParameters(schema *Schema) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			toolArgument: map[string]any{
				"type":  "array",
				"items": JSONSchema(schema),
			},
		},
		"required": []string{toolArgument},
	}
}
