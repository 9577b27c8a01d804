// Package pagination validates raw page/size query parameters.
package pagination

import (
	"fmt"
	"strconv"
)

// Violation codes
const (
	CodeMissingParameter = "MissingParameter"
	CodeInvalidFormat    = "InvalidFormat"
)

// FieldError describes one violated validation rule
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validate checks raw page and size inputs. Every violated rule is
// reported, not just the first, so the caller can surface all problems
// in one response. An empty result means the inputs are valid.
func Validate(page, size string) []FieldError {
	var errs []FieldError
	errs = append(errs, validateOne("page", page)...)
	errs = append(errs, validateOne("size", size)...)
	return errs
}

func validateOne(field, value string) []FieldError {
	if value == "" {
		return []FieldError{{
			Field:   field,
			Code:    CodeMissingParameter,
			Message: fmt.Sprintf("%s is required", field),
		}}
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return []FieldError{{
			Field:   field,
			Code:    CodeInvalidFormat,
			Message: fmt.Sprintf("%s must be a positive integer", field),
		}}
	}

	return nil
}

// Parse returns the validated page and size as integers. It must only be
// called after Validate reported no violations.
func Parse(page, size string) (int, int) {
	p, _ := strconv.Atoi(page)
	s, _ := strconv.Atoi(size)
	return p, s
}
