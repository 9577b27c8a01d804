package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten_SingleKeyUnwrap(t *testing.T) {
	got := Flatten(map[string]any{"a": map[string]any{"b": 1}}, "", "_")
	assert.Equal(t, map[string]any{"a": 1}, got)
}

func TestFlatten_MultiKeyRecursion(t *testing.T) {
	got := Flatten(map[string]any{"a": map[string]any{"b": 1, "c": 2}}, "", "_")
	assert.Equal(t, map[string]any{"a_b": 1, "a_c": 2}, got)
}

func TestFlatten_Mixed(t *testing.T) {
	record := map[string]any{
		"name": "acme",
		"owner": map[string]any{
			"email": "a@acme.test",
			"phone": "123",
		},
		"plan": map[string]any{"tier": "gold"},
	}
	got := Flatten(record, "", "_")
	assert.Equal(t, map[string]any{
		"name":        "acme",
		"owner_email": "a@acme.test",
		"owner_phone": "123",
		"plan":        "gold",
	}, got)
}

func TestFlatten_DeepNesting(t *testing.T) {
	record := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1, "d": 2},
			"e": 3,
		},
	}
	got := Flatten(record, "", "_")
	assert.Equal(t, map[string]any{"a_b_c": 1, "a_b_d": 2, "a_e": 3}, got)
}

func TestFlatten_PrefixAndDelimiter(t *testing.T) {
	got := Flatten(map[string]any{"x": 1, "y": map[string]any{"p": 2, "q": 3}}, "root", ".")
	assert.Equal(t, map[string]any{"root.x": 1, "root.y.p": 2, "root.y.q": 3}, got)
}

func TestFlatten_ScalarsUntouched(t *testing.T) {
	record := map[string]any{"n": 42, "s": "text", "b": true, "empty": nil}
	got := Flatten(record, "", "_")
	assert.Equal(t, record, got)
}
