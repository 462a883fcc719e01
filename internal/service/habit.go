package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/storage"
)

var validate = validator.New()

const newHabitXP = 50

// HabitRequest is the full mutable field set of a habit. PUT semantics are a
// full-field overwrite: every field the caller omits falls back to its zero
// value, the previous stored value is not merged in.
type HabitRequest struct {
	Title    string `json:"title" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Priority string `json:"priority" validate:"required,oneof=low medium high"`
	Reminder bool   `json:"reminder"`
	Streak   int    `json:"streak" validate:"gte=0"`
}

func ValidateHabitRequest(req *HabitRequest) error {
	return validate.Struct(req)
}

func CreateHabit(ctx context.Context, habits storage.HabitRepository, req *HabitRequest) (*internal.Habit, error) {
	h := &internal.Habit{
		Title:    req.Title,
		Time:     req.Time,
		Priority: req.Priority,
		Reminder: req.Reminder,
		Streak:   req.Streak,
		XP:       newHabitXP,
	}
	if err := habits.AddHabit(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ReplaceHabit overwrites all mutable fields of an existing habit. Only id
// and xp survive from the stored record.
func ReplaceHabit(ctx context.Context, habits storage.HabitRepository, id int, req *HabitRequest) (*internal.Habit, error) {
	existing, err := habits.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	h := &internal.Habit{
		ID:       existing.ID,
		Title:    req.Title,
		Time:     req.Time,
		Priority: req.Priority,
		Reminder: req.Reminder,
		Streak:   req.Streak,
		XP:       existing.XP,
	}
	if err := habits.UpdateHabit(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ApplyStreakUpdate is the streak transition: +1 on completion, -1 clamped
// at zero otherwise. Pure, touches nothing but the given habit.
func ApplyStreakUpdate(h internal.Habit, completed bool) internal.Habit {
	if completed {
		h.Streak++
	} else if h.Streak > 0 {
		h.Streak--
	}
	return h
}

func UpdateStreak(ctx context.Context, habits storage.HabitRepository, id int, completed bool) (*internal.Habit, error) {
	existing, err := habits.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := ApplyStreakUpdate(*existing, completed)
	if err := habits.UpdateHabit(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func DeleteHabit(ctx context.Context, habits storage.HabitRepository, id int) error {
	return habits.DeleteHabit(ctx, id)
}
