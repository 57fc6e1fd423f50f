package usecase

import (
	"log"
	"time"

	"chorehub-backend/internal/task/domain"
)

// NextDeadline advances a deadline by interval units of the given frequency.
// Monthly advancement uses time.AddDate's calendar arithmetic without
// end-of-month clamping: Jan 31 + 1 month normalizes forward (2024-01-31
// becomes 2024-03-02).
func NextDeadline(deadline time.Time, freq domain.Frequency, interval int) time.Time {
	switch freq {
	case domain.FrequencyDaily:
		return deadline.AddDate(0, 0, interval)
	case domain.FrequencyWeekly:
		return deadline.AddDate(0, 0, 7*interval)
	case domain.FrequencyMonthly:
		return deadline.AddDate(0, interval, 0)
	}
	return deadline
}

// buildSuccessor constructs the follow-up task for a completed recurring
// task. The successor is an independent record: it copies the descriptive
// fields and the recurrence spec, resets completion, notification and
// archival state, and advances the deadline. A deadline-less source yields
// a deadline-less successor.
func buildSuccessor(task *domain.Task, now time.Time) *domain.Task {
	assignedTo := make([]string, len(task.AssignedTo))
	copy(assignedTo, task.AssignedTo)

	successor := &domain.Task{
		HouseholdID: task.HouseholdID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Priority:    task.Priority,
		AssignedTo:  assignedTo,
		Recurrence: domain.Recurrence{
			Enabled:        task.Recurrence.Enabled,
			Frequency:      task.Recurrence.Frequency,
			Interval:       task.Recurrence.Interval,
			LastRecurrence: &now,
		},
	}

	if task.Deadline != nil {
		next := NextDeadline(*task.Deadline, task.Recurrence.Frequency, task.Recurrence.Interval)
		successor.Deadline = &next
	}

	return successor
}

// spawnSuccessor creates the successor record in the task store.
func (u *taskUsecase) spawnSuccessor(task *domain.Task, now time.Time) (*domain.Task, error) {
	successor := buildSuccessor(task, now)
	if err := u.taskRepo.Create(successor); err != nil {
		return nil, err
	}
	log.Printf("[Tasks] Spawned recurring successor %s for task %s", successor.ID, task.ID)
	return successor, nil
}
