package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourname/habitquest/internal"
)

const (
	milestoneCount = 6
	subtaskCount   = 2

	defaultXP       = 100
	defaultProgress = 0
)

// ValidateGoal checks an untyped decoded tree against the goal schema and
// coerces it into a Goal. It is a pure function: same candidate in, same
// result out, no I/O.
//
// Required keys (title, deadline, milestones) that are missing or mistyped
// are fatal; optional fields fall back to documented defaults. A malformed
// milestone is never dropped to make the count work out.
func ValidateGoal(candidate map[string]any) (*internal.Goal, error) {
	title, ok := candidate["title"].(string)
	if !ok || title == "" {
		return nil, fmt.Errorf("%w: missing or invalid title", internal.ErrSchemaViolation)
	}

	deadline, ok := candidate["deadline"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid deadline", internal.ErrSchemaViolation)
	}
	if _, err := time.Parse("2006-01-02", deadline); err != nil {
		return nil, fmt.Errorf("%w: deadline %q is not a date", internal.ErrSchemaViolation, deadline)
	}

	rawMilestones, ok := candidate["milestones"]
	if !ok {
		return nil, fmt.Errorf("%w: missing milestones", internal.ErrSchemaViolation)
	}
	milestones, err := validateMilestones(rawMilestones)
	if err != nil {
		return nil, err
	}

	goal := &internal.Goal{
		Title:      title,
		Deadline:   deadline,
		Milestones: milestones,
		XP:         defaultXP,
		Priority:   internal.PriorityMedium,
		Progress:   defaultProgress,
	}

	if xp, ok := intField(candidate, "xp"); ok && xp >= 0 {
		goal.XP = xp
	}
	if p, ok := candidate["priority"].(string); ok && internal.ValidPriority(p) {
		goal.Priority = p
	}
	if raw, present := candidate["progress"]; present {
		progress, ok := asInt(raw)
		if !ok || progress < 0 || progress > 100 {
			return nil, fmt.Errorf("%w: progress must be an integer in [0,100]", internal.ErrSchemaViolation)
		}
		goal.Progress = progress
	}

	return goal, nil
}

// validateMilestones accepts the canonical array-of-objects shape and the
// legacy map shape of milestone title to subtask list. The map shape loses
// JSON order during decoding, so its entries are sorted by title to keep
// validation deterministic.
func validateMilestones(raw any) ([]internal.Milestone, error) {
	switch v := raw.(type) {
	case []any:
		if len(v) != milestoneCount {
			return nil, fmt.Errorf("%w: expected %d milestones, got %d", internal.ErrSchemaViolation, milestoneCount, len(v))
		}
		milestones := make([]internal.Milestone, 0, milestoneCount)
		for i, entry := range v {
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: milestone %d is not an object", internal.ErrSchemaViolation, i+1)
			}
			title, ok := obj["title"].(string)
			if !ok || title == "" {
				return nil, fmt.Errorf("%w: milestone %d has no title", internal.ErrSchemaViolation, i+1)
			}
			subtasks, err := validateSubtasks(obj["subtasks"], title)
			if err != nil {
				return nil, err
			}
			milestones = append(milestones, internal.Milestone{Title: title, Subtasks: subtasks})
		}
		return milestones, nil

	case map[string]any:
		if len(v) != milestoneCount {
			return nil, fmt.Errorf("%w: expected %d milestones, got %d", internal.ErrSchemaViolation, milestoneCount, len(v))
		}
		titles := make([]string, 0, milestoneCount)
		for title := range v {
			titles = append(titles, title)
		}
		sort.Strings(titles)
		milestones := make([]internal.Milestone, 0, milestoneCount)
		for _, title := range titles {
			subtasks, err := validateSubtasks(v[title], title)
			if err != nil {
				return nil, err
			}
			milestones = append(milestones, internal.Milestone{Title: title, Subtasks: subtasks})
		}
		return milestones, nil

	default:
		return nil, fmt.Errorf("%w: milestones is neither a list nor a mapping", internal.ErrSchemaViolation)
	}
}

func validateSubtasks(raw any, milestone string) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: milestone %q has no subtask list", internal.ErrSchemaViolation, milestone)
	}
	if len(list) != subtaskCount {
		return nil, fmt.Errorf("%w: milestone %q has %d subtasks, expected %d", internal.ErrSchemaViolation, milestone, len(list), subtaskCount)
	}
	subtasks := make([]string, subtaskCount)
	for i, entry := range list {
		s, ok := entry.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%w: milestone %q subtask %d is not a string", internal.ErrSchemaViolation, milestone, i+1)
		}
		subtasks[i] = s
	}
	return subtasks, nil
}

func intField(candidate map[string]any, key string) (int, bool) {
	raw, ok := candidate[key]
	if !ok {
		return 0, false
	}
	return asInt(raw)
}

// asInt accepts the float64 that encoding/json produces for numbers, but
// only when it carries an integral value.
func asInt(raw any) (int, bool) {
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
