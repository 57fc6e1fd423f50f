package repository

import (
	"errors"
	"time"

	"chorehub-backend/internal/household/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *domain.Category) error
	CreateBatch(categories []domain.Category) error
	FindByID(id string) (*domain.Category, error)
	FindByHousehold(householdID string) ([]*domain.Category, error)
	Delete(id string) error
}

// categoryRepository implements CategoryRepository using GORM
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new GORM-based CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now()
	return r.db.Create(category).Error
}

func (r *categoryRepository) CreateBatch(categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}
	now := time.Now()
	for i := range categories {
		if categories[i].ID == "" {
			categories[i].ID = uuid.New().String()
		}
		categories[i].CreatedAt = now
	}
	return r.db.Create(&categories).Error
}

func (r *categoryRepository) FindByID(id string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByHousehold(householdID string) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.Where("household_id = ?", householdID).
		Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Delete(id string) error {
	return r.db.Delete(&domain.Category{}, "id = ?", id).Error
}
