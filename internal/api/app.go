package api

import (
	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/recommend"
	"github.com/yourname/habitquest/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Habits() storage.HabitRepository
	Goals() storage.GoalRepository
	Users() storage.UserRepository
	Engine() *recommend.Engine
}
