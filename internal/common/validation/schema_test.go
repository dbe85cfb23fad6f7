package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateRequestAcceptsValidInput(t *testing.T) {
	result, err := ValidateCreateRequest(map[string]interface{}{
		"email":        "jane@example.com",
		"category":     "defect",
		"product":      "Widget 3000",
		"serialNumber": "SN-0042",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateCreateRequestRequiresEmail(t *testing.T) {
	result, err := ValidateCreateRequest(map[string]interface{}{
		"category": "defect",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateCreateRequestRejectsMalformedEmail(t *testing.T) {
	result, err := ValidateCreateRequest(map[string]interface{}{
		"email": "not-an-email",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestFormatErrors(t *testing.T) {
	result := &ValidationResult{
		Valid: false,
		Errors: []ValidationError{
			{Field: "email", Message: "is required"},
			{Field: "category", Message: "Invalid type"},
		},
	}
	out := FormatErrors(result)
	assert.Contains(t, out, "email: is required")
	assert.Contains(t, out, "category: Invalid type")
}

func TestFormatErrorsEmptyForValidResult(t *testing.T) {
	assert.Equal(t, "", FormatErrors(&ValidationResult{Valid: true}))
	assert.Equal(t, "", FormatErrors(nil))
}
