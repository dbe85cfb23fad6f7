package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// createRequestSchema constrains the operator-supplied request before any
// network call is made. Email is the only hard requirement; the record fields
// are free-form strings per the register layout.
const createRequestSchema = `{
	"type": "object",
	"properties": {
		"email":           {"type": "string", "format": "email", "minLength": 3},
		"category":        {"type": "string"},
		"complaint":       {"type": "string"},
		"reply":           {"type": "string"},
		"condition":       {"type": "string"},
		"product":         {"type": "string"},
		"status":          {"type": "string"},
		"decontamination": {"type": "string"},
		"serialNumber":    {"type": "string"}
	},
	"required": ["email"]
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCreateRequest checks the given document (struct or map with json
// tags) against the create-request schema.
func ValidateCreateRequest(doc interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(createRequestSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return out, nil
}

// FormatErrors renders a validation result as a single human-readable string.
func FormatErrors(result *ValidationResult) string {
	if result == nil || result.Valid {
		return ""
	}
	parts := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}
