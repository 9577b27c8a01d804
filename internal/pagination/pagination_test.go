package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate("1", "10"))
	assert.Empty(t, Validate("3", "50"))
}

func TestValidate_Missing(t *testing.T) {
	errs := Validate("", "10")
	require.Len(t, errs, 1)
	assert.Equal(t, "page", errs[0].Field)
	assert.Equal(t, CodeMissingParameter, errs[0].Code)

	errs = Validate("1", "")
	require.Len(t, errs, 1)
	assert.Equal(t, "size", errs[0].Field)
	assert.Equal(t, CodeMissingParameter, errs[0].Code)
}

func TestValidate_InvalidFormat(t *testing.T) {
	tests := []struct {
		name string
		page string
		size string
	}{
		{"page zero", "0", "10"},
		{"page negative", "-1", "10"},
		{"page not a number", "abc", "10"},
		{"size zero", "1", "0"},
		{"size not a number", "1", "ten"},
		{"page decimal", "1.5", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.page, tt.size)
			require.Len(t, errs, 1)
			assert.Equal(t, CodeInvalidFormat, errs[0].Code)
		})
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	errs := Validate("", "abc")
	require.Len(t, errs, 2)
	assert.Equal(t, CodeMissingParameter, errs[0].Code)
	assert.Equal(t, "page", errs[0].Field)
	assert.Equal(t, CodeInvalidFormat, errs[1].Code)
	assert.Equal(t, "size", errs[1].Field)
}

func TestParse(t *testing.T) {
	page, size := Parse("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)
}
