package scheduler

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chorehub-backend/internal/task/domain"
	"chorehub-backend/internal/task/repository"
)

func newTestRepo(t *testing.T) repository.TaskRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return repository.NewGormTaskRepository(db)
}

type notifyCall struct {
	memberID string
	kind     string
}

// recordingDispatcher records calls and reports delivery per the fail flag
type recordingDispatcher struct {
	calls []notifyCall
	fail  bool
}

func (d *recordingDispatcher) Notify(_ context.Context, memberID, _, _ string, data map[string]string) bool {
	d.calls = append(d.calls, notifyCall{memberID: memberID, kind: data["type"]})
	return !d.fail
}

func createTask(t *testing.T, repo repository.TaskRepository, deadline time.Time, assignedTo []string) *domain.Task {
	t.Helper()
	task := &domain.Task{
		HouseholdID: "hh-1",
		Title:       "chore",
		Deadline:    &deadline,
		AssignedTo:  assignedTo,
	}
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return task
}

func TestSweepNotifiesSoonDueAssignees(t *testing.T) {
	repo := newTestRepo(t)
	dispatcher := &recordingDispatcher{}
	sweeper := NewDeadlineSweeper(repo, dispatcher, 5*time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := createTask(t, repo, now.Add(30*time.Minute), []string{"alice", "bob"})

	sweeper.Sweep(now)

	if len(dispatcher.calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(dispatcher.calls))
	}
	for _, call := range dispatcher.calls {
		if call.kind != "task_due_soon" {
			t.Errorf("notification type = %q, want task_due_soon", call.kind)
		}
	}

	stored, err := repo.FindByID(task.ID)
	if err != nil || stored == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.HourNotified {
		t.Error("hour_notified must be set after the sweep")
	}
	if stored.OverdueNotified {
		t.Error("soon-due task must not get the overdue flag")
	}
}

func TestSweepNotifiesOverdueAssignees(t *testing.T) {
	repo := newTestRepo(t)
	dispatcher := &recordingDispatcher{}
	sweeper := NewDeadlineSweeper(repo, dispatcher, 5*time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := createTask(t, repo, now.Add(-2*time.Hour), []string{"alice"})

	sweeper.Sweep(now)

	if len(dispatcher.calls) != 1 || dispatcher.calls[0].kind != "task_overdue" {
		t.Fatalf("expected one overdue notification, got %v", dispatcher.calls)
	}

	stored, _ := repo.FindByID(task.ID)
	if !stored.OverdueNotified {
		t.Error("overdue_notified must be set after the sweep")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	dispatcher := &recordingDispatcher{}
	sweeper := NewDeadlineSweeper(repo, dispatcher, 5*time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	createTask(t, repo, now.Add(30*time.Minute), []string{"alice"})
	createTask(t, repo, now.Add(-time.Hour), []string{"alice"})

	sweeper.Sweep(now)
	firstRun := len(dispatcher.calls)

	// A later sweep over the same state must not re-notify.
	sweeper.Sweep(now.Add(5 * time.Minute))

	if len(dispatcher.calls) != firstRun {
		t.Errorf("second sweep sent %d extra notifications", len(dispatcher.calls)-firstRun)
	}
}

func TestSweepSetsFlagWithoutAssignees(t *testing.T) {
	repo := newTestRepo(t)
	dispatcher := &recordingDispatcher{}
	sweeper := NewDeadlineSweeper(repo, dispatcher, 5*time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := createTask(t, repo, now.Add(30*time.Minute), []string{})

	sweeper.Sweep(now)

	if len(dispatcher.calls) != 0 {
		t.Errorf("unassigned task produced %d notifications", len(dispatcher.calls))
	}
	stored, _ := repo.FindByID(task.ID)
	if !stored.HourNotified {
		t.Error("flag must be set even with no assignees")
	}
}

func TestSweepContinuesPastDeliveryFailure(t *testing.T) {
	repo := newTestRepo(t)
	dispatcher := &recordingDispatcher{fail: true}
	sweeper := NewDeadlineSweeper(repo, dispatcher, 5*time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := createTask(t, repo, now.Add(10*time.Minute), []string{"alice"})
	second := createTask(t, repo, now.Add(20*time.Minute), []string{"bob"})

	sweeper.Sweep(now)

	if len(dispatcher.calls) != 2 {
		t.Fatalf("expected both tasks attempted despite failures, got %d calls", len(dispatcher.calls))
	}
	for _, id := range []string{first.ID, second.ID} {
		stored, _ := repo.FindByID(id)
		if !stored.HourNotified {
			t.Errorf("task %s flag not set after failed delivery", id)
		}
	}
}

func TestSweepSkipsCompletedTasks(t *testing.T) {
	repo := newTestRepo(t)
	dispatcher := &recordingDispatcher{}
	sweeper := NewDeadlineSweeper(repo, dispatcher, 5*time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := createTask(t, repo, now.Add(-time.Hour), []string{"alice"})
	completedAt := now.Add(-30 * time.Minute)
	task.Completed = true
	task.CompletedAt = &completedAt
	task.CompletedBy = "alice"
	if err := repo.Update(task); err != nil {
		t.Fatalf("Update: %v", err)
	}

	sweeper.Sweep(now)

	if len(dispatcher.calls) != 0 {
		t.Errorf("completed task produced %d notifications", len(dispatcher.calls))
	}
}
