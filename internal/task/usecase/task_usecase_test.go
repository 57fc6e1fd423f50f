package usecase

import (
	"errors"
	"testing"
	"time"

	authdomain "chorehub-backend/internal/auth/domain"
	"chorehub-backend/internal/task/domain"
	"chorehub-backend/internal/task/repository"
)

const testHousehold = "hh-1"

func newTestUsecase(t *testing.T) (TaskUsecase, repository.TaskRepository) {
	t.Helper()
	repo := newTestRepo(t)
	directory := &fakeDirectory{users: map[string]authdomain.User{
		"alice": {ID: "alice", Name: "Alice", Email: "alice@example.com"},
		"bob":   {ID: "bob", Name: "Bob", Email: "bob@example.com"},
	}}
	uc := NewTaskUsecase(repo, &fakeMembership{}, directory, 14*24*time.Hour)
	return uc, repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTaskDefaults(t *testing.T) {
	uc, _ := newTestUsecase(t)

	task, err := uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Vacuum",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if task.ID == "" {
		t.Error("expected generated id")
	}
	if task.Priority != domain.PriorityMedium {
		t.Errorf("priority = %s, want medium", task.Priority)
	}
	if task.AssignedTo == nil || len(task.AssignedTo) != 0 {
		t.Errorf("assigned_to = %v, want empty non-nil set", task.AssignedTo)
	}
	if task.Completed || task.Archived || task.HourNotified || task.OverdueNotified {
		t.Error("new task must start with all flags cleared")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Vacuum",
		Priority:    "urgent",
	})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("err = %v, want ErrInvalidPriority", err)
	}

	_, err = uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Vacuum",
		Recurrence:  &RecurrenceRequest{Enabled: true, Frequency: "yearly", Interval: 1},
	})
	if !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("err = %v, want ErrInvalidFrequency", err)
	}

	_, err = uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Vacuum",
		Recurrence:  &RecurrenceRequest{Enabled: true, Frequency: "daily", Interval: 0},
	})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("err = %v, want ErrInvalidInterval", err)
	}
}

func TestCompletionInvariant(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Now()

	task, err := uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Dishes",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	updated, err := uc.UpdateTask("alice", task.ID, TaskUpdateRequest{Completed: boolPtr(true)}, now)
	if err != nil {
		t.Fatalf("UpdateTask complete: %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil || updated.CompletedBy != "alice" {
		t.Errorf("completion fields not set together: %+v", updated)
	}

	updated, err = uc.UpdateTask("alice", task.ID, TaskUpdateRequest{Completed: boolPtr(false)}, now)
	if err != nil {
		t.Fatalf("UpdateTask uncomplete: %v", err)
	}
	if updated.Completed || updated.CompletedAt != nil || updated.CompletedBy != "" {
		t.Errorf("completion fields not cleared together: %+v", updated)
	}

	stored, err := repo.FindByID(task.ID)
	if err != nil || stored == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Completed || stored.CompletedAt != nil || stored.CompletedBy != "" {
		t.Error("cleared completion state not persisted")
	}
}

func TestCompletingRecurringTaskSpawnsSuccessor(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

	task, err := uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Take out trash",
		Category:    "cat-1",
		Priority:    "high",
		Deadline:    strPtr("2024-01-15T10:00:00Z"),
		AssignedTo:  []string{"alice", "bob"},
		Recurrence:  &RecurrenceRequest{Enabled: true, Frequency: "daily", Interval: 2},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := uc.UpdateTask("alice", task.ID, TaskUpdateRequest{Completed: boolPtr(true)}, now); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	tasks, err := repo.Find(repository.TaskFilter{HouseholdID: testHousehold})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected original plus successor, got %d tasks", len(tasks))
	}

	original, successor := tasks[0], tasks[1]
	if original.ID != task.ID {
		original, successor = successor, original
	}

	if successor.ID == original.ID {
		t.Fatal("successor must be an independent record")
	}
	if !original.Completed {
		t.Error("original must stay completed")
	}
	if original.Title != "Take out trash" || original.Category != "cat-1" {
		t.Error("completing must not alter the original's descriptive fields")
	}

	if successor.Completed || successor.CompletedAt != nil || successor.CompletedBy != "" {
		t.Error("successor must start uncompleted")
	}
	wantDeadline := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)
	if successor.Deadline == nil || !successor.Deadline.Equal(wantDeadline) {
		t.Errorf("successor deadline = %v, want %s", successor.Deadline, wantDeadline)
	}
	if !successor.Recurrence.Enabled || successor.Recurrence.LastRecurrence == nil {
		t.Error("successor must carry the recurrence spec with last_recurrence set")
	}
}

func TestCompletingNonRecurringTaskSpawnsNothing(t *testing.T) {
	uc, repo := newTestUsecase(t)

	task, err := uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "One-off",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := uc.UpdateTask("alice", task.ID, TaskUpdateRequest{Completed: boolPtr(true)}, time.Now()); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	tasks, err := repo.Find(repository.TaskFilter{HouseholdID: testHousehold})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}
}

func TestRecompletingDoesNotSpawnTwice(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Now()

	task, err := uc.CreateTask("alice", CreateTaskRequest{
		HouseholdID: testHousehold,
		Title:       "Recurring",
		Recurrence:  &RecurrenceRequest{Enabled: true, Frequency: "weekly", Interval: 1},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// Completing an already-completed task is a no-op for the spawn hook.
	if _, err := uc.UpdateTask("alice", task.ID, TaskUpdateRequest{Completed: boolPtr(true)}, now); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if _, err := uc.UpdateTask("alice", task.ID, TaskUpdateRequest{Completed: boolPtr(true)}, now); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	tasks, err := repo.Find(repository.TaskFilter{HouseholdID: testHousehold})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected original plus one successor, got %d tasks", len(tasks))
	}
}

func TestArchivalBoundary(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	makeCompleted := func(title string, completedAt time.Time) *domain.Task {
		task := &domain.Task{
			HouseholdID: testHousehold,
			Title:       title,
			Completed:   true,
			CompletedAt: &completedAt,
			CompletedBy: "alice",
		}
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return task
	}

	oldTask := makeCompleted("old", now.Add(-14*24*time.Hour-time.Second))
	freshTask := makeCompleted("fresh", now.Add(-13*24*time.Hour))

	tasks, err := uc.ListTasks("alice", testHousehold, ListOptions{}, now)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != freshTask.ID {
		t.Errorf("expected only the fresh task in the default listing, got %d tasks", len(tasks))
	}

	stored, err := repo.FindByID(oldTask.ID)
	if err != nil || stored == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.Archived {
		t.Error("task past the retention window must be archived on list-read")
	}

	archived, err := uc.ListArchived("alice", testHousehold)
	if err != nil {
		t.Fatalf("ListArchived: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != oldTask.ID {
		t.Errorf("archived view = %d tasks, want the old task only", len(archived))
	}
}

func TestArchivalIsIdempotent(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Now()

	completedAt := now.Add(-15 * 24 * time.Hour)
	task := &domain.Task{
		HouseholdID: testHousehold,
		Title:       "old chore",
		Completed:   true,
		CompletedAt: &completedAt,
		CompletedBy: "bob",
	}
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := uc.ListTasks("alice", testHousehold, ListOptions{}, now); err != nil {
			t.Fatalf("ListTasks run %d: %v", i+1, err)
		}
	}

	archived, err := uc.ListArchived("alice", testHousehold)
	if err != nil {
		t.Fatalf("ListArchived: %v", err)
	}
	if len(archived) != 1 {
		t.Errorf("archived set = %d tasks after two sweeps, want 1", len(archived))
	}
}

func TestGetStatistics(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	complete := func(member string, completedAt time.Time) {
		task := &domain.Task{
			HouseholdID: testHousehold,
			Title:       "chore",
			Completed:   true,
			CompletedAt: &completedAt,
			CompletedBy: member,
		}
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	recent := now.Add(-2 * 24 * time.Hour)
	complete("alice", recent)
	complete("alice", recent)
	complete("alice", recent)
	complete("bob", recent)
	// Outside the 7-day window, counted only by "all".
	complete("bob", now.Add(-20*24*time.Hour))

	stats, err := uc.GetStatistics("alice", testHousehold, Range7Days, now)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	if stats[0].MemberID != "alice" || stats[0].Count != 3 {
		t.Errorf("row 0 = %+v, want alice with count 3", stats[0])
	}
	if stats[1].MemberID != "bob" || stats[1].Count != 1 {
		t.Errorf("row 1 = %+v, want bob with count 1", stats[1])
	}
	if stats[0].Name != "Alice" {
		t.Errorf("row 0 name = %q, want resolved profile", stats[0].Name)
	}

	all, err := uc.GetStatistics("alice", testHousehold, RangeAll, now)
	if err != nil {
		t.Fatalf("GetStatistics all: %v", err)
	}
	if len(all) != 2 || all[0].Count != 3 || all[1].Count != 2 {
		t.Errorf("all-range rows = %+v, want alice 3, bob 2", all)
	}

	if _, err := uc.GetStatistics("alice", testHousehold, "last-year", now); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestGetStatisticsUnknownMember(t *testing.T) {
	uc, repo := newTestUsecase(t)
	now := time.Now()

	completedAt := now.Add(-time.Hour)
	task := &domain.Task{
		HouseholdID: testHousehold,
		Title:       "chore",
		Completed:   true,
		CompletedAt: &completedAt,
		CompletedBy: "ghost",
	}
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stats, err := uc.GetStatistics("alice", testHousehold, RangeAll, now)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if len(stats) != 1 || stats[0].Name != "Unknown" {
		t.Errorf("unresolvable member should be reported as Unknown, got %+v", stats)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.UpdateTask("alice", "missing", TaskUpdateRequest{Title: strPtr("x")}, time.Now())
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}
