package ai

import "google.golang.org/genai"

// SchemaType is a JSON value type understood by every provider.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
)

// Schema is a provider-neutral, JSON-schema-like description of the expected output.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	// Order fixes property order; Gemini emits fields in this order.
	Order    []string
	Items    *Schema
	Required []string
}

// ToGenai converts the schema into the Gemini SDK representation.
func (s *Schema) ToGenai() *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Items:       s.Items.ToGenai(),
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if len(s.Order) > 0 {
		out.PropertyOrdering = append([]string(nil), s.Order...)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.ToGenai()
		}
	}
	return out
}

// ToJSONSchema converts the schema into a strict JSON Schema document.
// Objects are closed (additionalProperties=false) as required by strict structured outputs.
func (s *Schema) ToJSONSchema() map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{
		"type": string(s.Type),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = s.Items.ToJSONSchema()
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.ToJSONSchema()
		}
		out["properties"] = props
		out["additionalProperties"] = false
		required := s.Required
		if required == nil {
			required = []string{}
		}
		out["required"] = append([]string(nil), required...)
	}
	return out
}

func genaiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeNumber:
		return genai.TypeNumber
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// SuggestionBundleSchema declares the two mandatory top-level arrays of a suggestion response.
var SuggestionBundleSchema = &Schema{
	Type:     TypeObject,
	Order:    []string{"hashtags", "growthIdeas"},
	Required: []string{"hashtags", "growthIdeas"},
	Properties: map[string]*Schema{
		"hashtags": {
			Type:        TypeArray,
			Description: "A list of trending and relevant hashtags. Provide at least 10.",
			Items: &Schema{
				Type:     TypeObject,
				Order:    []string{"hashtag", "reason"},
				Required: []string{"hashtag", "reason"},
				Properties: map[string]*Schema{
					"hashtag": {
						Type:        TypeString,
						Description: "The hashtag, including the '#' symbol.",
					},
					"reason": {
						Type:        TypeString,
						Description: "A brief explanation of why this hashtag is a good choice for the user's account.",
					},
				},
			},
		},
		"growthIdeas": {
			Type:        TypeArray,
			Description: "A list of creative and actionable growth ideas. Provide at least 5 detailed ideas.",
			Items: &Schema{
				Type:     TypeObject,
				Order:    []string{"title", "description"},
				Required: []string{"title", "description"},
				Properties: map[string]*Schema{
					"title": {
						Type:        TypeString,
						Description: "A concise title for the growth idea.",
					},
					"description": {
						Type:        TypeString,
						Description: "A detailed, step-by-step description of the growth strategy.",
					},
				},
			},
		},
	},
}
