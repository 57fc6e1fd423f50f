package usecase

import (
	"errors"
	"time"

	authdomain "chorehub-backend/internal/auth/domain"
	hhdomain "chorehub-backend/internal/household/domain"
	"chorehub-backend/internal/task/domain"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
	ErrInvalidInterval  = errors.New("recurrence interval must be at least 1")
	ErrInvalidRange     = errors.New("invalid statistics range")
	ErrInvalidDeadline  = errors.New("invalid deadline timestamp")
)

// Statistics range selectors
const (
	RangeAll    = "all"
	Range7Days  = "7days"
	Range30Days = "30days"
)

// MembershipChecker verifies a user belongs to a household. Implemented by
// the household usecase.
type MembershipChecker interface {
	RequireMembership(userID, householdID string) (*hhdomain.Household, error)
}

// MemberDirectory resolves member ids to profiles for statistics rows.
// Implemented by the auth user repository.
type MemberDirectory interface {
	FindByIDs(ids []string) ([]authdomain.User, error)
}

// CreateTaskRequest represents the fields of a new task
type CreateTaskRequest struct {
	HouseholdID string             `json:"household_id" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Priority    string             `json:"priority"`
	Deadline    *string            `json:"deadline"` // RFC3339
	AssignedTo  []string           `json:"assigned_to"`
	Recurrence  *RecurrenceRequest `json:"recurrence"`
}

// RecurrenceRequest is the recurrence spec as submitted by clients
type RecurrenceRequest struct {
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
}

// TaskUpdateRequest represents the fields that can be updated. Nil fields
// are left unchanged.
type TaskUpdateRequest struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Priority    *string            `json:"priority,omitempty"`
	Deadline    *string            `json:"deadline,omitempty"` // RFC3339, "" clears
	AssignedTo  *[]string          `json:"assigned_to,omitempty"`
	Completed   *bool              `json:"completed,omitempty"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`
}

// ListOptions are the optional filters of a task listing
type ListOptions struct {
	Category   string
	Completed  *bool
	AssignedTo string
}

// MemberStats is one row of the completion statistics
type MemberStats struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Count    int64  `json:"count"`
}

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task in a household the user belongs to
	CreateTask(userID string, req CreateTaskRequest) (*domain.Task, error)

	// GetTaskByID retrieves a task (with membership check)
	GetTaskByID(userID, taskID string) (*domain.Task, error)

	// ListTasks runs the lazy archival sweep for the household, then returns
	// its non-archived tasks matching opts
	ListTasks(userID, householdID string, opts ListOptions, now time.Time) ([]*domain.Task, error)

	// ListArchived returns the household's archived tasks, most recently
	// completed first
	ListArchived(userID, householdID string) ([]*domain.Task, error)

	// UpdateTask applies a partial update. Completing a recurring task
	// spawns its successor as a side effect.
	UpdateTask(userID, taskID string, updates TaskUpdateRequest, now time.Time) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(userID, taskID string) error

	// GetStatistics returns per-member completed-task counts for the
	// household over the given range, sorted by count descending
	GetStatistics(userID, householdID, rng string, now time.Time) ([]MemberStats, error)
}
