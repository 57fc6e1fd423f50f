package repository

import (
	"errors"
	"fmt"
	"time"

	"chorehub-backend/internal/household/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HouseholdRepository defines the interface for household data access
type HouseholdRepository interface {
	Create(household *domain.Household) error
	FindByID(id string) (*domain.Household, error)
	FindByMember(userID string) ([]*domain.Household, error)
	FindWithPendingInvite(email string) ([]*domain.Household, error)
	Update(household *domain.Household) error
	Delete(id string) error
}

// householdRepository implements HouseholdRepository using GORM
type householdRepository struct {
	db *gorm.DB
}

// NewHouseholdRepository creates a new GORM-based HouseholdRepository
func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Create(household *domain.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.Members == nil {
		household.Members = []string{}
	}
	if household.Invites == nil {
		household.Invites = []domain.Invite{}
	}
	household.CreatedAt = time.Now()
	household.UpdatedAt = time.Now()
	return r.db.Create(household).Error
}

func (r *householdRepository) FindByID(id string) (*domain.Household, error) {
	var household domain.Household
	err := r.db.Where("id = ?", id).First(&household).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &household, nil
}

// FindByMember returns households containing the given user ID. Members are
// stored as a JSON array, so the candidate set is narrowed with a substring
// match and verified in Go.
func (r *householdRepository) FindByMember(userID string) ([]*domain.Household, error) {
	var candidates []*domain.Household
	pattern := fmt.Sprintf("%%%q%%", userID)
	if err := r.db.Where("members LIKE ?", pattern).
		Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	var households []*domain.Household
	for _, h := range candidates {
		if h.HasMember(userID) {
			households = append(households, h)
		}
	}
	return households, nil
}

// FindWithPendingInvite returns households holding a pending invite for the
// given email address.
func (r *householdRepository) FindWithPendingInvite(email string) ([]*domain.Household, error) {
	var candidates []*domain.Household
	pattern := fmt.Sprintf("%%%q%%", email)
	if err := r.db.Where("invites LIKE ?", pattern).
		Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	var households []*domain.Household
	for _, h := range candidates {
		if h.PendingInvite(email) != nil {
			households = append(households, h)
		}
	}
	return households, nil
}

func (r *householdRepository) Update(household *domain.Household) error {
	household.UpdatedAt = time.Now()
	return r.db.Save(household).Error
}

func (r *householdRepository) Delete(id string) error {
	return r.db.Delete(&domain.Household{}, "id = ?", id).Error
}
