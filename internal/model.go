package internal

// Priority levels recognized for habits and goals.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Habit struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Time     string `json:"time"`
	Priority string `json:"priority"`
	Reminder bool   `json:"reminder"`
	Streak   int    `json:"streak"`
	XP       int    `json:"xp"`
}

// Milestone is a named sub-goal carrying exactly two subtasks.
type Milestone struct {
	Title    string   `json:"title"`
	Subtasks []string `json:"subtasks"`
}

type Goal struct {
	Title      string      `json:"title"`
	Deadline   string      `json:"deadline"` // YYYY-MM-DD
	Milestones []Milestone `json:"milestones"`
	XP         int         `json:"xp"`
	Priority   string      `json:"priority"`
	Progress   int         `json:"progress"` // 0..100
}

type Preferences struct {
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

type User struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Password   string      `json:"password"` // bcrypt hash; handlers must expose UserProfile, never this
	Avatar     string      `json:"avatar"`
	DateJoined string      `json:"dateJoined"` // YYYY-MM-DD
	Prefs      Preferences `json:"preferences"`
}
