package repository

import (
	"errors"
	"time"

	"chorehub-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.AssignedTo == nil {
		task.AssignedTo = []string{}
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) Find(filter TaskFilter) ([]*domain.Task, error) {
	query := r.db.Model(&domain.Task{}).Where("household_id = ?", filter.HouseholdID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Archived != nil {
		query = query.Where("archived = ?", *filter.Archived)
	}
	if filter.DeadlineFrom != nil {
		query = query.Where("deadline >= ?", *filter.DeadlineFrom)
	}
	if filter.DeadlineTo != nil {
		query = query.Where("deadline <= ?", *filter.DeadlineTo)
	}

	var tasks []*domain.Task
	if err := query.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	// Assignment is a JSON column; the member predicate runs in Go.
	if filter.AssignedTo != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.IsAssignedTo(filter.AssignedTo) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	return tasks, nil
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *gormTaskRepository) Delete(id string) error {
	return r.db.Delete(&domain.Task{}, "id = ?", id).Error
}

func (r *gormTaskRepository) FindDueSoon(now, until time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("completed = ? AND hour_notified = ? AND deadline >= ? AND deadline <= ?",
		false, false, now, until).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) FindOverdue(now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("completed = ? AND overdue_notified = ? AND deadline < ?",
		false, false, now).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) MarkHourNotified(id string) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"hour_notified": true,
			"updated_at":    time.Now(),
		}).Error
}

func (r *gormTaskRepository) MarkOverdueNotified(id string) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"overdue_notified": true,
			"updated_at":       time.Now(),
		}).Error
}

func (r *gormTaskRepository) ArchiveCompletedBefore(householdID string, cutoff time.Time) (int64, error) {
	result := r.db.Model(&domain.Task{}).
		Where("household_id = ? AND completed = ? AND archived = ? AND completed_at < ?",
			householdID, true, false, cutoff).
		Updates(map[string]interface{}{
			"archived":   true,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *gormTaskRepository) FindArchived(householdID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("household_id = ? AND archived = ?", householdID, true).
		Order("completed_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) CountCompletedByMember(householdID string, since *time.Time) ([]MemberCount, error) {
	query := r.db.Model(&domain.Task{}).
		Select("completed_by AS member_id, COUNT(*) AS count").
		Where("household_id = ? AND completed = ? AND completed_by <> ''", householdID, true)

	if since != nil {
		query = query.Where("completed_at >= ?", *since)
	}

	var counts []MemberCount
	err := query.Group("completed_by").Scan(&counts).Error
	return counts, err
}

func (r *gormTaskRepository) CountByCategory(householdID, categoryID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).
		Where("household_id = ? AND category = ?", householdID, categoryID).
		Count(&count).Error
	return count, err
}
