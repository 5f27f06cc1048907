package textops

import (
	"encoding/json"
	"strings"

	"github.com/zoobzio/sentinel"
)

// jsonSchemaFor builds a JSON Schema for a response type using sentinel
// metadata. The schema is embedded in the prompt so the model is steered
// toward the exact contract the validator enforces: field names come from
// json tags, closed enum sets from `choices` tags, descriptions from `desc`
// tags. Unknown fields are declared forbidden.
func jsonSchemaFor[T any]() string {
	metadata := sentinel.Inspect[T]()

	properties := make(map[string]interface{})
	var required []string

	for _, field := range metadata.Fields {
		name := jsonFieldName(field)
		if name == "-" {
			continue
		}

		prop := map[string]interface{}{
			"type": jsonType(field.Type),
		}
		if desc, ok := field.Tags["desc"]; ok {
			prop["description"] = desc
		}
		if choices, ok := field.Tags["choices"]; ok {
			var values []string
			for _, v := range strings.Split(choices, ",") {
				values = append(values, strings.TrimSpace(v))
			}
			prop["enum"] = values
		}
		properties[name] = prop

		if !strings.Contains(field.Tags["json"], "omitempty") {
			required = append(required, name)
		}
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

// jsonFieldName extracts the wire name for a field from its json tag,
// defaulting to the lower-cased Go name.
func jsonFieldName(field sentinel.FieldMetadata) string {
	if tag, ok := field.Tags["json"]; ok {
		parts := strings.Split(tag, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
	}
	return strings.ToLower(field.Name[:1]) + field.Name[1:]
}

// jsonType maps Go types to JSON Schema types.
func jsonType(goType string) string {
	switch {
	case strings.HasPrefix(goType, "string"):
		return "string"
	case strings.HasPrefix(goType, "int"), strings.HasPrefix(goType, "uint"):
		return "integer"
	case strings.HasPrefix(goType, "float"):
		return "number"
	case strings.HasPrefix(goType, "bool"):
		return "boolean"
	case strings.HasPrefix(goType, "[]"):
		return "array"
	case strings.HasPrefix(goType, "map["):
		return "object"
	default:
		return "object"
	}
}
