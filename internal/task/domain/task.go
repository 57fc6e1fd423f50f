package domain

import "time"

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Frequency represents how often a recurring task repeats
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Recurrence is the policy governing automatic successor-task generation
// when a task is completed.
type Recurrence struct {
	Enabled        bool       `json:"enabled" gorm:"default:false"`
	Frequency      Frequency  `json:"frequency,omitempty"`
	Interval       int        `json:"interval,omitempty"` // in units of Frequency, >= 1
	LastRecurrence *time.Time `json:"last_recurrence,omitempty"`
}

// Task is a schedulable, assignable chore belonging to exactly one household.
//
// Completion fields are set and cleared together: completed=false implies
// completed_at and completed_by are empty. The notification flags are
// one-way; once set they are never reset, which guarantees at most one
// notification per threshold crossing. Archived is set only by the archival
// sweep and never reset.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	HouseholdID string     `json:"household_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category" gorm:"index"` // category id
	Priority    Priority   `json:"priority" gorm:"default:medium"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AssignedTo  []string   `json:"assigned_to" gorm:"serializer:json"` // member ids, never nil

	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`

	HourNotified    bool `json:"hour_notified" gorm:"default:false"`
	OverdueNotified bool `json:"overdue_notified" gorm:"default:false"`
	Archived        bool `json:"archived" gorm:"default:false"`

	Recurrence Recurrence `json:"recurrence" gorm:"embedded;embeddedPrefix:recur_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAssignedTo reports whether the task is assigned to the given member.
func (t *Task) IsAssignedTo(memberID string) bool {
	for _, m := range t.AssignedTo {
		if m == memberID {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is a recognized priority value.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidFrequency reports whether f is a recognized recurrence frequency.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}
