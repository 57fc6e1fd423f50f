package usecase

import (
	"log"
	"time"

	"chorehub-backend/internal/task/domain"
	"chorehub-backend/internal/task/repository"
)

// taskUsecase implements TaskUsecase
type taskUsecase struct {
	taskRepo   repository.TaskRepository
	households MembershipChecker
	directory  MemberDirectory
	retention  time.Duration // archival window for completed tasks
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(
	taskRepo repository.TaskRepository,
	households MembershipChecker,
	directory MemberDirectory,
	retention time.Duration,
) TaskUsecase {
	return &taskUsecase{
		taskRepo:   taskRepo,
		households: households,
		directory:  directory,
		retention:  retention,
	}
}

func (u *taskUsecase) CreateTask(userID string, req CreateTaskRequest) (*domain.Task, error) {
	if _, err := u.households.RequireMembership(userID, req.HouseholdID); err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !domain.ValidPriority(priority) {
			return nil, ErrInvalidPriority
		}
	}

	assignedTo := req.AssignedTo
	if assignedTo == nil {
		assignedTo = []string{}
	}

	task := &domain.Task{
		HouseholdID: req.HouseholdID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		AssignedTo:  assignedTo,
	}

	if req.Deadline != nil && *req.Deadline != "" {
		t, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			return nil, ErrInvalidDeadline
		}
		task.Deadline = &t
	}

	if req.Recurrence != nil {
		rec, err := parseRecurrence(req.Recurrence)
		if err != nil {
			return nil, err
		}
		task.Recurrence = rec
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) GetTaskByID(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if _, err := u.households.RequireMembership(userID, task.HouseholdID); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) ListTasks(userID, householdID string, opts ListOptions, now time.Time) ([]*domain.Task, error) {
	if _, err := u.households.RequireMembership(userID, householdID); err != nil {
		return nil, err
	}

	// Lazy archival sweep: every list-read first retires completed tasks
	// older than the retention window, so the boundary is enforced without
	// a dedicated timer.
	cutoff := now.Add(-u.retention)
	archived, err := u.taskRepo.ArchiveCompletedBefore(householdID, cutoff)
	if err != nil {
		return nil, err
	}
	if archived > 0 {
		log.Printf("[Tasks] Archived %d completed tasks for household %s", archived, householdID)
	}

	notArchived := false
	filter := repository.TaskFilter{
		HouseholdID: householdID,
		Category:    opts.Category,
		Completed:   opts.Completed,
		Archived:    &notArchived,
		AssignedTo:  opts.AssignedTo,
	}
	return u.taskRepo.Find(filter)
}

func (u *taskUsecase) ListArchived(userID, householdID string) ([]*domain.Task, error) {
	if _, err := u.households.RequireMembership(userID, householdID); err != nil {
		return nil, err
	}
	return u.taskRepo.FindArchived(householdID)
}

func (u *taskUsecase) UpdateTask(userID, taskID string, updates TaskUpdateRequest, now time.Time) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Category != nil {
		task.Category = *updates.Category
	}
	if updates.Priority != nil {
		priority := domain.Priority(*updates.Priority)
		if !domain.ValidPriority(priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = priority
	}
	if updates.Deadline != nil {
		if *updates.Deadline == "" {
			task.Deadline = nil
		} else {
			t, err := time.Parse(time.RFC3339, *updates.Deadline)
			if err != nil {
				return nil, ErrInvalidDeadline
			}
			task.Deadline = &t
		}
	}
	if updates.AssignedTo != nil {
		assignedTo := *updates.AssignedTo
		if assignedTo == nil {
			assignedTo = []string{}
		}
		task.AssignedTo = assignedTo
	}
	if updates.Recurrence != nil {
		rec, err := parseRecurrence(updates.Recurrence)
		if err != nil {
			return nil, err
		}
		rec.LastRecurrence = task.Recurrence.LastRecurrence
		task.Recurrence = rec
	}

	// Completion fields are set and cleared together.
	completedNow := false
	if updates.Completed != nil && *updates.Completed != task.Completed {
		if *updates.Completed {
			task.Completed = true
			task.CompletedAt = &now
			task.CompletedBy = userID
			completedNow = true
		} else {
			task.Completed = false
			task.CompletedAt = nil
			task.CompletedBy = ""
		}
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	// Post-completion hook: a recurring task spawns its successor. The
	// completion is already committed; a spawn failure is logged, never
	// rolled back.
	if completedNow && task.Recurrence.Enabled {
		if _, err := u.spawnSuccessor(task, now); err != nil {
			log.Printf("[Tasks] Failed to spawn successor for task %s: %v", task.ID, err)
		}
	}

	return task, nil
}

func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}
	return u.taskRepo.Delete(task.ID)
}

func parseRecurrence(req *RecurrenceRequest) (domain.Recurrence, error) {
	rec := domain.Recurrence{Enabled: req.Enabled}
	if !req.Enabled {
		return rec, nil
	}

	rec.Frequency = domain.Frequency(req.Frequency)
	if !domain.ValidFrequency(rec.Frequency) {
		return domain.Recurrence{}, ErrInvalidFrequency
	}
	if req.Interval < 1 {
		return domain.Recurrence{}, ErrInvalidInterval
	}
	rec.Interval = req.Interval
	return rec, nil
}
