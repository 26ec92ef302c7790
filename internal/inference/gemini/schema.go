package gemini

// schema mirrors the subset of the Gemini response schema format the client
// needs to constrain structured output.
type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
	MinItems   int                `json:"minItems,omitempty"`
	MaxItems   int                `json:"maxItems,omitempty"`
}

// entrySchema is the fixed schema for dictionary lookups: translated term,
// parallel definitions, exactly two examples, a 3-4 line scenario, one usage
// note. The service-side constraint is a first line of defense; the response
// is still validated locally before an entry is assembled.
func entrySchema() *schema {
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"translated_term":   {Type: "STRING"},
			"definition_target": {Type: "STRING"},
			"definition_native": {Type: "STRING"},
			"examples": {
				Type:     "ARRAY",
				MinItems: 2,
				MaxItems: 2,
				Items: &schema{
					Type: "OBJECT",
					Properties: map[string]*schema{
						"target": {Type: "STRING"},
						"native": {Type: "STRING"},
					},
					Required: []string{"target", "native"},
				},
			},
			"scenario": {
				Type:     "ARRAY",
				MinItems: 3,
				MaxItems: 4,
				Items: &schema{
					Type: "OBJECT",
					Properties: map[string]*schema{
						"speaker":     {Type: "STRING"},
						"text":        {Type: "STRING"},
						"translation": {Type: "STRING"},
					},
					Required: []string{"speaker", "text", "translation"},
				},
			},
			"usage_note": {Type: "STRING"},
		},
		Required: []string{
			"translated_term", "definition_target", "definition_native",
			"examples", "scenario", "usage_note",
		},
	}
}
