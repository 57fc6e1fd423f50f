package repository

import (
	"time"

	"chorehub-backend/internal/task/domain"
)

// TaskFilter narrows a task query. HouseholdID is required; the remaining
// fields are optional predicates.
type TaskFilter struct {
	HouseholdID  string
	Category     string
	Completed    *bool
	Archived     *bool
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	AssignedTo   string // member id
}

// MemberCount is a completed-task count for one member
type MemberCount struct {
	MemberID string
	Count    int64
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task with generated id and defaulted fields
	Create(task *domain.Task) error

	// FindByID finds a task by its ID
	FindByID(id string) (*domain.Task, error)

	// Find returns tasks matching the filter in insertion order
	Find(filter TaskFilter) ([]*domain.Task, error)

	// Update persists the full task record
	Update(task *domain.Task) error

	// Delete deletes a task by ID
	Delete(id string) error

	// FindDueSoon returns unfinished, not-yet-notified tasks whose deadline
	// falls within [now, until]
	FindDueSoon(now, until time.Time) ([]*domain.Task, error)

	// FindOverdue returns unfinished, not-yet-notified tasks whose deadline
	// is strictly before now
	FindOverdue(now time.Time) ([]*domain.Task, error)

	// MarkHourNotified sets the one-way soon-due notification flag
	MarkHourNotified(id string) error

	// MarkOverdueNotified sets the one-way overdue notification flag
	MarkOverdueNotified(id string) error

	// ArchiveCompletedBefore marks completed, unarchived tasks of the
	// household with completed_at older than cutoff as archived. Returns the
	// number of tasks archived.
	ArchiveCompletedBefore(householdID string, cutoff time.Time) (int64, error)

	// FindArchived returns the household's archived tasks, most recently
	// completed first
	FindArchived(householdID string) ([]*domain.Task, error)

	// CountCompletedByMember returns per-member completed-task counts for
	// the household. A nil since counts all completions; otherwise only
	// completions at or after since are counted.
	CountCompletedByMember(householdID string, since *time.Time) ([]MemberCount, error)

	// CountByCategory returns how many tasks of the household reference the
	// given category
	CountByCategory(householdID, categoryID string) (int64, error)
}
