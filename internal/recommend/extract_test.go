package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject_ProseWrapped(t *testing.T) {
	reply := "Sure! Here is your goal:\n{\"title\":\"X\",\"deadline\":\"2025-01-01\"}\nHope that helps!"
	raw, ok := ExtractJSONObject(reply)
	assert.True(t, ok)
	assert.Equal(t, `{"title":"X","deadline":"2025-01-01"}`, raw)
}

func TestExtractJSONObject_CodeFence(t *testing.T) {
	reply := "```json\n{\"title\":\"X\"}\n```"
	raw, ok := ExtractJSONObject(reply)
	assert.True(t, ok)
	assert.Equal(t, `{"title":"X"}`, raw)
}

func TestExtractJSONObject_NestedObjects(t *testing.T) {
	reply := `prefix {"a":{"b":{"c":1}},"d":2} suffix {"ignored":true}`
	raw, ok := ExtractJSONObject(reply)
	assert.True(t, ok)
	assert.Equal(t, `{"a":{"b":{"c":1}},"d":2}`, raw)
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	reply := `{"title":"curly } brace \" and { more"}`
	raw, ok := ExtractJSONObject(reply)
	assert.True(t, ok)
	assert.Equal(t, reply, raw)
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	_, ok := ExtractJSONObject("no structured data here")
	assert.False(t, ok)
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	_, ok := ExtractJSONObject(`{"title":"X"`)
	assert.False(t, ok)
}
