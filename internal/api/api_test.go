package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/api"
	"github.com/yourname/habitquest/internal/recommend"
	"github.com/yourname/habitquest/internal/storage"
)

type oracleFunc func(ctx context.Context, prompt string) (string, error)

func (f oracleFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type testApp struct {
	logger internal.Logger
	store  *storage.FileStorage
	engine *recommend.Engine
}

func (a *testApp) Logger() internal.Logger         { return a.logger }
func (a *testApp) Habits() storage.HabitRepository { return a.store }
func (a *testApp) Goals() storage.GoalRepository   { return a.store }
func (a *testApp) Users() storage.UserRepository   { return a.store }
func (a *testApp) Engine() *recommend.Engine       { return a.engine }

const validGoalJSON = `{"title":"X","deadline":"2025-01-01","milestones":[` +
	`{"title":"A","subtasks":["a1","a2"]},{"title":"B","subtasks":["b1","b2"]},` +
	`{"title":"C","subtasks":["c1","c2"]},{"title":"D","subtasks":["d1","d2"]},` +
	`{"title":"E","subtasks":["e1","e2"]},{"title":"F","subtasks":["f1","f2"]}]}`

func setupRouter(t *testing.T, oracleReply string) (*gin.Engine, *testApp) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	dir := t.TempDir()
	store, err := storage.NewFileStorage(
		filepath.Join(dir, "habits.json"),
		filepath.Join(dir, "goals.json"),
		filepath.Join(dir, "users.json"),
		logger,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	client := oracleFunc(func(ctx context.Context, prompt string) (string, error) {
		return oracleReply, nil
	})
	app := &testApp{
		logger: logger,
		store:  store,
		engine: recommend.NewEngine(client, store, 5*time.Second, logger),
	}
	return api.NewRouter(app), app
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestPostHabit_ValidAndInvalid(t *testing.T) {
	r, _ := setupRouter(t, "")

	w := doJSON(r, "POST", "/habits", `{"title":"Read","time":"08:00","priority":"high"}`)
	assert.Equal(t, 201, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, float64(50), data["xp"])
	assert.Equal(t, float64(0), data["streak"])

	// Missing title
	w = doJSON(r, "POST", "/habits", `{"time":"08:00","priority":"high"}`)
	assert.Equal(t, 400, w.Code)

	// Unrecognized priority
	w = doJSON(r, "POST", "/habits", `{"title":"Read","time":"08:00","priority":"banana"}`)
	assert.Equal(t, 400, w.Code)
}

func TestPatchStreak(t *testing.T) {
	r, _ := setupRouter(t, "")
	doJSON(r, "POST", "/habits", `{"title":"Read","time":"08:00","priority":"high"}`)

	w := doJSON(r, "PATCH", "/habits/1/streak", `{"completed":true}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, float64(1), dataField(t, w)["streak"])

	w = doJSON(r, "PATCH", "/habits/1/streak", `{"completed":false}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, float64(0), dataField(t, w)["streak"])

	w = doJSON(r, "PATCH", "/habits/99/streak", `{"completed":true}`)
	assert.Equal(t, 404, w.Code)
}

func TestDeleteHabit(t *testing.T) {
	r, _ := setupRouter(t, "")
	doJSON(r, "POST", "/habits", `{"title":"Read","time":"08:00","priority":"high"}`)

	w := doJSON(r, "DELETE", "/habits/1", "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "DELETE", "/habits/1", "")
	assert.Equal(t, 404, w.Code)
}

func TestPostRecommendation_FullGoalShape(t *testing.T) {
	r, app := setupRouter(t, "Sure! "+validGoalJSON+" Enjoy!")

	w := doJSON(r, "POST", "/recommendations", `{"prompt":"teach me guitar"}`)
	assert.Equal(t, 201, w.Code)

	data := dataField(t, w)
	assert.Equal(t, "X", data["title"])
	milestones, ok := data["milestones"].([]any)
	require.True(t, ok)
	assert.Len(t, milestones, 6)

	goals, err := app.Goals().ListGoals(context.Background())
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestPostRecommendation_BadReply(t *testing.T) {
	r, app := setupRouter(t, "I cannot help with that.")

	w := doJSON(r, "POST", "/recommendations", `{"prompt":"teach me guitar"}`)
	assert.Equal(t, 502, w.Code)

	goals, err := app.Goals().ListGoals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupRouter(t, "")

	body := `{"username":"demo","email":"demo@example.com","password":"correct-horse","avatar":"cat.png"}`
	w := doJSON(r, "POST", "/register", body)
	assert.Equal(t, 201, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "demo", data["username"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)

	// Duplicate email conflicts.
	w = doJSON(r, "POST", "/register", body)
	assert.Equal(t, 409, w.Code)

	w = doJSON(r, "POST", "/login", `{"email":"demo@example.com","password":"correct-horse"}`)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, "POST", "/login", `{"email":"demo@example.com","password":"wrong"}`)
	assert.Equal(t, 401, w.Code)

	w = doJSON(r, "POST", "/login", `{"email":"nobody@example.com","password":"whatever"}`)
	assert.Equal(t, 401, w.Code)
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t, "")
	w := doJSON(r, "GET", "/health", "")
	assert.Equal(t, 200, w.Code)
}
