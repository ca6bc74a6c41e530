package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanMapClone(t *testing.T) {
	orig := PlanMap{"2024-01-01": {Duration: 15, Note: "Ease in"}}

	clone := orig.Clone()
	clone["2024-01-02"] = PlanEntry{Duration: 20}
	delete(clone, "2024-01-01")

	assert.Len(t, orig, 1)
	assert.Equal(t, PlanEntry{Duration: 15, Note: "Ease in"}, orig["2024-01-01"])

	var nilMap PlanMap
	assert.NotNil(t, nilMap.Clone())
}

func TestCompletionMapToggle(t *testing.T) {
	t.Run("toggle on then off restores original", func(t *testing.T) {
		c := CompletionMap{"2024-01-03": true}
		orig := CompletionMap{"2024-01-03": true}

		assert.True(t, c.Toggle("2024-01-05"))
		assert.True(t, c.IsDone("2024-01-05"))
		assert.False(t, c.Toggle("2024-01-05"))

		assert.Equal(t, orig, c)
	})

	t.Run("toggle off then on restores original", func(t *testing.T) {
		c := CompletionMap{"2024-01-03": true}

		assert.False(t, c.Toggle("2024-01-03"))
		assert.False(t, c.IsDone("2024-01-03"))
		assert.True(t, c.Toggle("2024-01-03"))

		assert.Equal(t, CompletionMap{"2024-01-03": true}, c)
	})

	t.Run("missing key reads as not done", func(t *testing.T) {
		assert.False(t, CompletionMap{}.IsDone("2024-02-01"))
	})
}

func TestCompletionMapNormalize(t *testing.T) {
	c := CompletionMap{"2024-01-01": true, "2024-01-02": false}
	c.Normalize()
	assert.Equal(t, CompletionMap{"2024-01-01": true}, c)
}

func TestPlanMapSortedKeys(t *testing.T) {
	p := PlanMap{
		"2024-02-01": {Duration: 30},
		"2023-12-31": {Duration: 10},
		"2024-01-15": {Duration: 20},
	}
	assert.Equal(t, []string{"2023-12-31", "2024-01-15", "2024-02-01"}, p.SortedKeys())
	assert.Empty(t, PlanMap{}.SortedKeys())
}
