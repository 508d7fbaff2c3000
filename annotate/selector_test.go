package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorWithoutFilterMatchesEverything(t *testing.T) {
	sel := WidgetSelector{}

	assert.True(t, sel.Matches(map[string]any{"properties": map[string]any{"title": "Overall Latency"}}))
	assert.True(t, sel.Matches(map[string]any{"properties": map[string]any{}}))
	assert.True(t, sel.Matches(map[string]any{}))
}

func TestSelectorWithFilterMatchesTitleSubstring(t *testing.T) {
	sel := WidgetSelector{TitleContains: "Latency"}

	assert.True(t, sel.Matches(map[string]any{"properties": map[string]any{"title": "Overall Latency P95"}}))
	assert.False(t, sel.Matches(map[string]any{"properties": map[string]any{"title": "Error Rate"}}))
}

func TestSelectorFilterIsCaseSensitive(t *testing.T) {
	sel := WidgetSelector{TitleContains: "Latency"}

	assert.False(t, sel.Matches(map[string]any{"properties": map[string]any{"title": "overall latency"}}))
}

func TestSelectorTreatsMissingTitleAsEmpty(t *testing.T) {
	sel := WidgetSelector{TitleContains: "Latency"}

	assert.False(t, sel.Matches(map[string]any{}))
	assert.False(t, sel.Matches(map[string]any{"properties": map[string]any{}}))
	assert.False(t, sel.Matches(map[string]any{"properties": map[string]any{"title": 42}}))
	assert.False(t, sel.Matches(map[string]any{"properties": "oops"}))
}
