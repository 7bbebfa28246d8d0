package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/raphaelgruber/visionboard/internal/metrics"
	"github.com/raphaelgruber/visionboard/internal/models"
)

// GoalStore talks to the goals backend.
//
// Mutations do not return the stored entity; callers re-list to observe the
// authoritative state.
type GoalStore struct {
	c *Client
}

// NewGoalStore creates a goals backend client for baseURL.
func NewGoalStore(baseURL string, opts ...Option) *GoalStore {
	return &GoalStore{c: New(baseURL, opts...)}
}

// List fetches all goals in backend order.
func (s *GoalStore) List(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.c.do(ctx, metrics.OpGoalsList, http.MethodGet, "/goals", nil, &goals); err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals, nil
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create submits a new goal. The title is trimmed and must not be empty.
func (s *GoalStore) Create(ctx context.Context, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	body := createGoalRequest{Title: title, Description: strings.TrimSpace(description)}
	return s.c.do(ctx, metrics.OpGoalsCreate, http.MethodPost, "/goals", body, nil)
}

type updateGoalRequest struct {
	Status models.Status `json:"status"`
}

// Update changes the status of goal id.
func (s *GoalStore) Update(ctx context.Context, id string, status models.Status) error {
	path, err := goalPath(id)
	if err != nil {
		return err
	}
	return s.c.do(ctx, metrics.OpGoalsUpdate, http.MethodPatch, path, updateGoalRequest{Status: status}, nil)
}

// Delete removes goal id. A 204 response is success.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	path, err := goalPath(id)
	if err != nil {
		return err
	}
	return s.c.do(ctx, metrics.OpGoalsDelete, http.MethodDelete, path, nil, nil)
}

func goalPath(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyID
	}
	return "/goals/" + url.PathEscape(id), nil
}
