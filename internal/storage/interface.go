package storage

import (
	"context"

	"github.com/yourname/habitquest/internal"
)

// Repositories are whole-collection stores: every mutation is a
// read-modify-write over the full collection. Two concurrent writers to the
// same habit resolve last-writer-wins; that limitation is inherited from the
// backing store and accepted, not hidden.

type HabitRepository interface {
	ListHabits(ctx context.Context) ([]internal.Habit, error)
	GetHabit(ctx context.Context, id int) (*internal.Habit, error)
	// AddHabit assigns a stable id from a monotonic counter and stores the habit.
	AddHabit(ctx context.Context, h *internal.Habit) error
	UpdateHabit(ctx context.Context, h *internal.Habit) error
	DeleteHabit(ctx context.Context, id int) error
}

type GoalRepository interface {
	AppendGoal(ctx context.Context, g *internal.Goal) error
	ListGoals(ctx context.Context) ([]internal.Goal, error)
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*internal.User, error)
	// AddUser fails with internal.ErrDuplicateEmail without mutating the store.
	AddUser(ctx context.Context, u *internal.User) error
}
