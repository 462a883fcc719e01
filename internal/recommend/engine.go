package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourname/habitquest/internal"
	"github.com/yourname/habitquest/internal/oracle"
	"github.com/yourname/habitquest/internal/storage"
)

// Engine turns a free-text user prompt into a validated Goal: compose the
// prompt, invoke the oracle, recover and decode the embedded payload,
// validate it, and only then append to the goal list. The store never
// observes a partially-shaped goal.
//
// The oracle call is a single blocking request with an explicit timeout;
// retry policy belongs to the caller.
type Engine struct {
	oracle  oracle.Client
	goals   storage.GoalRepository
	timeout time.Duration
	logger  internal.Logger
}

func NewEngine(client oracle.Client, goals storage.GoalRepository, timeout time.Duration, logger internal.Logger) *Engine {
	return &Engine{oracle: client, goals: goals, timeout: timeout, logger: logger}
}

func (e *Engine) Recommend(ctx context.Context, userPrompt string) (*internal.Goal, error) {
	prompt := ComposePrompt(userPrompt)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reply, err := e.oracle.Generate(ctx, prompt)
	if err != nil {
		e.logger.Errorf("recommend: oracle call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrOracleUnavailable, err)
	}

	raw, ok := ExtractJSONObject(reply)
	if !ok {
		e.logger.Warnf("recommend: no object found in oracle reply (%d bytes)", len(reply))
		return nil, fmt.Errorf("%w: reply contains no object", internal.ErrParseFailure)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		e.logger.Warnf("recommend: extracted span is not well-formed: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrParseFailure, err)
	}

	// Some replies wrap the goal in a chat-style envelope with a
	// "suggestion" key; the goal itself lives underneath.
	if suggestion, ok := tree["suggestion"].(map[string]any); ok {
		tree = suggestion
	}

	goal, err := ValidateGoal(tree)
	if err != nil {
		e.logger.Warnf("recommend: oracle reply rejected: %v", err)
		return nil, err
	}

	if err := e.goals.AppendGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("recommend: failed to store goal: %w", err)
	}
	return goal, nil
}
