package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/habitquest/internal"
)

// FileStorage keeps each collection in memory and mirrors it to a JSON file.
// Writes are debounced through per-collection save workers; each flush rewrites
// the whole file atomically (tmp + fsync + rename).
type FileStorage struct {
	habits      map[int]*internal.Habit
	nextHabitID int
	goals       []*internal.Goal
	users       map[string]*internal.User // email -> User

	mu sync.RWMutex

	habitsFile string
	goalsFile  string
	usersFile  string

	saveHabitsChan chan struct{}
	saveGoalsChan  chan struct{}
	saveUsersChan  chan struct{}
	shutdownChan   chan struct{}
	saveDelay      time.Duration
	wg             sync.WaitGroup

	logger internal.Logger
}

// habitsFilePayload persists the id counter alongside the collection so ids
// stay unique across deletions.
type habitsFilePayload struct {
	NextID int               `json:"next_id"`
	Habits []*internal.Habit `json:"habits"`
}

func NewFileStorage(habitsFile, goalsFile, usersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		habits:         make(map[int]*internal.Habit),
		nextHabitID:    1,
		users:          make(map[string]*internal.User),
		habitsFile:     habitsFile,
		goalsFile:      goalsFile,
		usersFile:      usersFile,
		saveHabitsChan: make(chan struct{}, 1),
		saveGoalsChan:  make(chan struct{}, 1),
		saveUsersChan:  make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveDelay:      500 * time.Millisecond,
		logger:         logger,
	}

	if err := s.loadHabits(); err != nil {
		return nil, fmt.Errorf("storage: failed to load habits: %w", err)
	}
	if err := s.loadGoals(); err != nil {
		return nil, fmt.Errorf("storage: failed to load goals: %w", err)
	}
	if err := s.loadUsers(); err != nil {
		return nil, fmt.Errorf("storage: failed to load users: %w", err)
	}

	s.wg.Add(3)
	go s.saveWorker("habits", s.saveHabitsChan, s.saveHabits)
	go s.saveWorker("goals", s.saveGoalsChan, s.saveGoals)
	go s.saveWorker("users", s.saveUsersChan, s.saveUsers)

	return s, nil
}

func (s *FileStorage) loadHabits() error {
	data, err := os.ReadFile(s.habitsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}

	var payload habitsFilePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		// Legacy layout: a bare habit array without the counter.
		var habits []*internal.Habit
		if err2 := json.Unmarshal(data, &habits); err2 != nil {
			return err
		}
		payload.Habits = habits
		for _, h := range habits {
			if h.ID >= payload.NextID {
				payload.NextID = h.ID + 1
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range payload.Habits {
		s.habits[h.ID] = h
	}
	if payload.NextID > s.nextHabitID {
		s.nextHabitID = payload.NextID
	}
	return nil
}

func (s *FileStorage) loadGoals() error {
	file, err := os.Open(s.goalsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var goals []*internal.Goal
	if err := json.NewDecoder(file).Decode(&goals); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = goals
	return nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users map[string]*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for email, u := range users {
		s.users[email] = u
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveHabits() error {
	s.mu.RLock()
	payload := habitsFilePayload{
		NextID: s.nextHabitID,
		Habits: make([]*internal.Habit, 0, len(s.habits)),
	}
	for _, h := range s.habits {
		payload.Habits = append(payload.Habits, h)
	}
	s.mu.RUnlock()

	sort.Slice(payload.Habits, func(i, j int) bool {
		return payload.Habits[i].ID < payload.Habits[j].ID
	})
	return atomicWriteFileJSON(s.habitsFile, payload)
}

func (s *FileStorage) saveGoals() error {
	s.mu.RLock()
	goals := make([]*internal.Goal, len(s.goals))
	copy(goals, s.goals)
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.goalsFile, goals)
}

func (s *FileStorage) saveUsers() error {
	s.mu.RLock()
	users := make(map[string]*internal.User, len(s.users))
	for email, u := range s.users {
		users[email] = u
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

// saveWorker batches save operations to avoid a disk write per mutation.
func (s *FileStorage) saveWorker(name string, signal <-chan struct{}, save func() error) {
	defer s.wg.Done()
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the save workers and flushes all collections synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	s.wg.Wait()

	if err := s.saveHabits(); err != nil {
		return err
	}
	if err := s.saveGoals(); err != nil {
		return err
	}
	return s.saveUsers()
}

// --- HabitRepository ---

func (s *FileStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habits := make([]internal.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, *h)
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (s *FileStorage) GetHabit(ctx context.Context, id int) (*internal.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[id]
	if !ok {
		return nil, internal.ErrNotFound
	}
	copied := *h
	return &copied, nil
}

func (s *FileStorage) AddHabit(ctx context.Context, h *internal.Habit) error {
	s.mu.Lock()
	h.ID = s.nextHabitID
	s.nextHabitID++
	stored := *h
	s.habits[stored.ID] = &stored
	s.mu.Unlock()

	signalSave(s.saveHabitsChan)
	return nil
}

func (s *FileStorage) UpdateHabit(ctx context.Context, h *internal.Habit) error {
	s.mu.Lock()
	if _, ok := s.habits[h.ID]; !ok {
		s.mu.Unlock()
		return internal.ErrNotFound
	}
	stored := *h
	s.habits[stored.ID] = &stored
	s.mu.Unlock()

	signalSave(s.saveHabitsChan)
	return nil
}

func (s *FileStorage) DeleteHabit(ctx context.Context, id int) error {
	s.mu.Lock()
	if _, ok := s.habits[id]; !ok {
		s.mu.Unlock()
		return internal.ErrNotFound
	}
	delete(s.habits, id)
	s.mu.Unlock()

	signalSave(s.saveHabitsChan)
	return nil
}

// --- GoalRepository ---

func (s *FileStorage) AppendGoal(ctx context.Context, g *internal.Goal) error {
	s.mu.Lock()
	stored := *g
	s.goals = append(s.goals, &stored)
	s.mu.Unlock()

	signalSave(s.saveGoalsChan)
	return nil
}

func (s *FileStorage) ListGoals(ctx context.Context) ([]internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]internal.Goal, len(s.goals))
	for i, g := range s.goals {
		goals[i] = *g
	}
	return goals, nil
}

// --- UserRepository ---

func (s *FileStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, internal.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *FileStorage) AddUser(ctx context.Context, u *internal.User) error {
	s.mu.Lock()
	if _, ok := s.users[u.Email]; ok {
		s.mu.Unlock()
		return internal.ErrDuplicateEmail
	}
	stored := *u
	s.users[stored.Email] = &stored
	s.mu.Unlock()

	signalSave(s.saveUsersChan)
	return nil
}

// --- Compile-time assertions ---
var _ HabitRepository = (*FileStorage)(nil)
var _ GoalRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
