package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourname/habitquest/internal"
)

const pgUniqueViolation = "23505"

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- HabitRepository ---

func (p *PostgresStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, habit_time, priority, reminder, streak, xp FROM habits ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query habits: %v", err)
		return nil, err
	}
	defer rows.Close()

	var habits []internal.Habit
	for rows.Next() {
		var h internal.Habit
		if err := rows.Scan(&h.ID, &h.Title, &h.Time, &h.Priority, &h.Reminder, &h.Streak, &h.XP); err != nil {
			p.logger.Errorf("failed to scan habit: %v", err)
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (p *PostgresStorage) GetHabit(ctx context.Context, id int) (*internal.Habit, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, title, habit_time, priority, reminder, streak, xp FROM habits WHERE id = $1`, id)
	var h internal.Habit
	if err := row.Scan(&h.ID, &h.Title, &h.Time, &h.Priority, &h.Reminder, &h.Streak, &h.XP); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (p *PostgresStorage) AddHabit(ctx context.Context, h *internal.Habit) error {
	// The sequence behind id keeps identifiers stable across deletions.
	row := p.pool.QueryRow(ctx,
		`INSERT INTO habits (title, habit_time, priority, reminder, streak, xp) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		h.Title, h.Time, h.Priority, h.Reminder, h.Streak, h.XP)
	if err := row.Scan(&h.ID); err != nil {
		p.logger.Errorf("failed to insert habit: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateHabit(ctx context.Context, h *internal.Habit) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE habits SET title = $2, habit_time = $3, priority = $4, reminder = $5, streak = $6, xp = $7 WHERE id = $1`,
		h.ID, h.Title, h.Time, h.Priority, h.Reminder, h.Streak, h.XP)
	if err != nil {
		p.logger.Errorf("failed to update habit: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteHabit(ctx context.Context, id int) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete habit: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrNotFound
	}
	return nil
}

// --- GoalRepository ---

func (p *PostgresStorage) AppendGoal(ctx context.Context, g *internal.Goal) error {
	milestones, err := json.Marshal(g.Milestones)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO goals (title, deadline, milestones, xp, priority, progress) VALUES ($1, $2, $3, $4, $5, $6)`,
		g.Title, g.Deadline, milestones, g.XP, g.Priority, g.Progress)
	if err != nil {
		p.logger.Errorf("failed to insert goal: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListGoals(ctx context.Context) ([]internal.Goal, error) {
	rows, err := p.pool.Query(ctx, `SELECT title, deadline, milestones, xp, priority, progress FROM goals ORDER BY created_at`)
	if err != nil {
		p.logger.Errorf("failed to query goals: %v", err)
		return nil, err
	}
	defer rows.Close()

	var goals []internal.Goal
	for rows.Next() {
		var g internal.Goal
		var milestones []byte
		if err := rows.Scan(&g.Title, &g.Deadline, &milestones, &g.XP, &g.Priority, &g.Progress); err != nil {
			p.logger.Errorf("failed to scan goal: %v", err)
			return nil, err
		}
		if err := json.Unmarshal(milestones, &g.Milestones); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// --- UserRepository ---

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, username, email, password, avatar, date_joined, notifications, theme FROM users WHERE email = $1`, email)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Avatar, &u.DateJoined, &u.Prefs.Notifications, &u.Prefs.Theme); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) AddUser(ctx context.Context, u *internal.User) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password, avatar, date_joined, notifications, theme) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.Password, u.Avatar, u.DateJoined, u.Prefs.Notifications, u.Prefs.Theme)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return internal.ErrDuplicateEmail
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ HabitRepository = (*PostgresStorage)(nil)
var _ GoalRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
