package storage

import (
	"fmt"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/config"
)

// Store bundles the three repositories behind one backend instance.
type Store interface {
	HabitRepository
	GoalRepository
	UserRepository
	Close() error
}

func New(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStorage(cfg.FileHabits, cfg.FileGoals, cfg.FileUsers, logger)
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
