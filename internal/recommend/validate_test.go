package recommend

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/habitquest/internal"
)

func candidateWithMilestones(n int) map[string]any {
	milestones := make([]any, 0, n)
	for i := 0; i < n; i++ {
		milestones = append(milestones, map[string]any{
			"title":    fmt.Sprintf("Milestone %d", i+1),
			"subtasks": []any{"first step", "second step"},
		})
	}
	return map[string]any{
		"title":      "Learn Go",
		"deadline":   "2025-12-31",
		"milestones": milestones,
	}
}

func TestValidateGoal_ValidWithDefaults(t *testing.T) {
	goal, err := ValidateGoal(candidateWithMilestones(6))
	require.NoError(t, err)

	assert.Equal(t, "Learn Go", goal.Title)
	assert.Equal(t, "2025-12-31", goal.Deadline)
	assert.Len(t, goal.Milestones, 6)
	for _, m := range goal.Milestones {
		assert.Len(t, m.Subtasks, 2)
	}
	assert.Equal(t, 100, goal.XP)
	assert.Equal(t, internal.PriorityMedium, goal.Priority)
	assert.Equal(t, 0, goal.Progress)
}

func TestValidateGoal_ExplicitOptionalFields(t *testing.T) {
	c := candidateWithMilestones(6)
	c["xp"] = float64(250)
	c["priority"] = "high"
	c["progress"] = float64(40)

	goal, err := ValidateGoal(c)
	require.NoError(t, err)
	assert.Equal(t, 250, goal.XP)
	assert.Equal(t, internal.PriorityHigh, goal.Priority)
	assert.Equal(t, 40, goal.Progress)
}

func TestValidateGoal_CoercesBadOptionalFields(t *testing.T) {
	c := candidateWithMilestones(6)
	c["xp"] = float64(-10)
	c["priority"] = "urgent"

	goal, err := ValidateGoal(c)
	require.NoError(t, err)
	assert.Equal(t, 100, goal.XP)
	assert.Equal(t, internal.PriorityMedium, goal.Priority)
}

func TestValidateGoal_ProgressOutOfRange(t *testing.T) {
	c := candidateWithMilestones(6)
	c["progress"] = float64(120)

	_, err := ValidateGoal(c)
	assert.ErrorIs(t, err, internal.ErrSchemaViolation)
}

func TestValidateGoal_FiveMilestones(t *testing.T) {
	_, err := ValidateGoal(candidateWithMilestones(5))
	assert.ErrorIs(t, err, internal.ErrSchemaViolation)
}

func TestValidateGoal_WrongSubtaskCount(t *testing.T) {
	c := candidateWithMilestones(6)
	milestones := c["milestones"].([]any)
	milestones[3].(map[string]any)["subtasks"] = []any{"only one"}

	_, err := ValidateGoal(c)
	assert.ErrorIs(t, err, internal.ErrSchemaViolation)
}

func TestValidateGoal_MissingRequiredFields(t *testing.T) {
	for _, key := range []string{"title", "deadline", "milestones"} {
		c := candidateWithMilestones(6)
		delete(c, key)
		_, err := ValidateGoal(c)
		assert.ErrorIs(t, err, internal.ErrSchemaViolation, "missing %s", key)
	}
}

func TestValidateGoal_BadDeadline(t *testing.T) {
	c := candidateWithMilestones(6)
	c["deadline"] = "next spring"
	_, err := ValidateGoal(c)
	assert.ErrorIs(t, err, internal.ErrSchemaViolation)
}

func TestValidateGoal_LegacyMapMilestones(t *testing.T) {
	milestones := map[string]any{}
	for i := 0; i < 6; i++ {
		milestones[fmt.Sprintf("Milestone %d", i+1)] = []any{"a", "b"}
	}
	c := map[string]any{
		"title":      "Learn Go",
		"deadline":   "2025-12-31",
		"milestones": milestones,
	}

	goal, err := ValidateGoal(c)
	require.NoError(t, err)
	assert.Len(t, goal.Milestones, 6)
	for _, m := range goal.Milestones {
		assert.Equal(t, []string{"a", "b"}, m.Subtasks)
	}
}

func TestValidateGoal_Idempotent(t *testing.T) {
	c := candidateWithMilestones(6)
	first, err := ValidateGoal(c)
	require.NoError(t, err)
	second, err := ValidateGoal(c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateGoal_FromDecodedJSON(t *testing.T) {
	raw := `{"title":"X","deadline":"2025-01-01","milestones":[` +
		`{"title":"A","subtasks":["a1","a2"]},{"title":"B","subtasks":["b1","b2"]},` +
		`{"title":"C","subtasks":["c1","c2"]},{"title":"D","subtasks":["d1","d2"]},` +
		`{"title":"E","subtasks":["e1","e2"]},{"title":"F","subtasks":["f1","f2"]}]}`
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &tree))

	goal, err := ValidateGoal(tree)
	require.NoError(t, err)
	assert.Equal(t, "X", goal.Title)
	assert.Equal(t, "A", goal.Milestones[0].Title)
	assert.Equal(t, "F", goal.Milestones[5].Title)
}
