package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"chorehub-backend/internal/task/domain"
	"chorehub-backend/internal/task/repository"

	"github.com/robfig/cron/v3"
)

// Dispatcher delivers a push notification to a single member. Delivery
// failure is reported through the return value, never an error, so the
// sweep can continue past it.
type Dispatcher interface {
	Notify(ctx context.Context, memberID, title, body string, data map[string]string) bool
}

// DeadlineSweeper periodically scans for soon-due and overdue tasks and
// notifies their assignees at most once per threshold crossing.
type DeadlineSweeper struct {
	taskRepo   repository.TaskRepository
	dispatcher Dispatcher
	interval   time.Duration
	cron       *cron.Cron
}

// NewDeadlineSweeper creates a new sweeper
func NewDeadlineSweeper(taskRepo repository.TaskRepository, dispatcher Dispatcher, interval time.Duration) *DeadlineSweeper {
	return &DeadlineSweeper{
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
		interval:   interval,
		cron:       cron.New(),
	}
}

// Start schedules the sweep and runs one immediately
func (s *DeadlineSweeper) Start() error {
	spec := fmt.Sprintf("@every %ds", int(s.interval.Seconds()))
	if _, err := s.cron.AddFunc(spec, func() {
		s.Sweep(time.Now())
	}); err != nil {
		return fmt.Errorf("schedule deadline sweep: %w", err)
	}

	log.Printf("[DeadlineSweeper] Starting (interval: %s)", s.interval)
	s.Sweep(time.Now())
	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish and stops the schedule
func (s *DeadlineSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[DeadlineSweeper] Stopped")
}

// Sweep runs the two independent scans. Errors in one scan do not prevent
// the other from running.
func (s *DeadlineSweeper) Sweep(now time.Time) {
	s.sweepDueSoon(now)
	s.sweepOverdue(now)
}

func (s *DeadlineSweeper) sweepDueSoon(now time.Time) {
	tasks, err := s.taskRepo.FindDueSoon(now, now.Add(time.Hour))
	if err != nil {
		log.Printf("[DeadlineSweeper] Error finding soon-due tasks: %v", err)
		return
	}

	for _, task := range tasks {
		s.notifyAssignees(task, "⏳ Due soon: "+task.Title, dueSoonBody(task), "task_due_soon")

		// The flag is set even when nobody was notified (no assignees or
		// failed delivery); one threshold crossing produces at most one
		// notification per task.
		if err := s.taskRepo.MarkHourNotified(task.ID); err != nil {
			log.Printf("[DeadlineSweeper] Error marking task %s hour-notified: %v", task.ID, err)
		}
	}
}

func (s *DeadlineSweeper) sweepOverdue(now time.Time) {
	tasks, err := s.taskRepo.FindOverdue(now)
	if err != nil {
		log.Printf("[DeadlineSweeper] Error finding overdue tasks: %v", err)
		return
	}

	for _, task := range tasks {
		s.notifyAssignees(task, "⚠️ Overdue: "+task.Title, overdueBody(task), "task_overdue")

		if err := s.taskRepo.MarkOverdueNotified(task.ID); err != nil {
			log.Printf("[DeadlineSweeper] Error marking task %s overdue-notified: %v", task.ID, err)
		}
	}
}

func (s *DeadlineSweeper) notifyAssignees(task *domain.Task, title, body, kind string) {
	data := map[string]string{
		"type":         kind,
		"task_id":      task.ID,
		"household_id": task.HouseholdID,
		"priority":     string(task.Priority),
		"click_action": "/tasks",
	}

	for _, memberID := range task.AssignedTo {
		if !s.dispatcher.Notify(context.Background(), memberID, title, body, data) {
			log.Printf("[DeadlineSweeper] Notification not delivered to member %s for task %s", memberID, task.ID)
		}
	}
}

func dueSoonBody(task *domain.Task) string {
	if task.Deadline == nil {
		return "A chore is due within the hour"
	}
	return fmt.Sprintf("Due at %s", task.Deadline.Format("15:04"))
}

func overdueBody(task *domain.Task) string {
	if task.Deadline == nil {
		return "A chore is overdue"
	}
	return fmt.Sprintf("Was due %s", task.Deadline.Format("02.01.2006 15:04"))
}
