package usecase

import (
	"errors"
	"time"

	authdomain "chorehub-backend/internal/auth/domain"
	authrepo "chorehub-backend/internal/auth/repository"
	"chorehub-backend/internal/household/domain"
	"chorehub-backend/internal/household/repository"
)

var (
	ErrHouseholdNotFound = errors.New("household not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrForbidden         = errors.New("forbidden")
	ErrPrivateHousehold  = errors.New("private households cannot be shared")
	ErrAlreadyMember     = errors.New("user is already a member")
	ErrAlreadyInvited    = errors.New("invite already sent")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrCreatorRemoval    = errors.New("creator cannot be removed")
	ErrCategoryInUse     = errors.New("category is still in use")
)

// MemberProfile is the public subset of a user returned with household listings
type MemberProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HouseholdView is a household with resolved member profiles
type HouseholdView struct {
	*domain.Household
	MemberDetails []MemberProfile `json:"member_details"`
}

// InviteSummary describes a pending invitation from the invitee's perspective
type InviteSummary struct {
	HouseholdID   string    `json:"household_id"`
	HouseholdName string    `json:"household_name"`
	InvitedAt     time.Time `json:"invited_at"`
}

// TaskCounter reports how many tasks still reference a category. Implemented
// by the task repository; wired in main to avoid a package cycle.
type TaskCounter interface {
	CountByCategory(householdID, categoryID string) (int64, error)
}

// HouseholdUsecase defines the interface for household business logic
type HouseholdUsecase interface {
	ListForUser(userID string) ([]*HouseholdView, error)
	Create(userID, name string, isPrivate bool) (*domain.Household, error)
	Invite(userID, householdID, email string) (*domain.Household, error)
	PendingInvites(userID string) ([]InviteSummary, error)
	Accept(userID, householdID string) (*domain.Household, error)
	Decline(userID, householdID string) error
	RemoveMember(actorID, householdID, memberID string) error
	RequireMembership(userID, householdID string) (*domain.Household, error)
	BootstrapPrivateHousehold(user *authdomain.User) error

	ListCategories(userID, householdID string) ([]*domain.Category, error)
	CreateCategory(userID, householdID, name, color string) (*domain.Category, error)
	DeleteCategory(userID, categoryID string) error
	SetTaskCounter(counter TaskCounter)
}

// householdUsecase implements HouseholdUsecase
type householdUsecase struct {
	householdRepo repository.HouseholdRepository
	categoryRepo  repository.CategoryRepository
	userRepo      authrepo.UserRepository
	taskCounter   TaskCounter
}

// NewHouseholdUsecase creates a new instance of householdUsecase
func NewHouseholdUsecase(
	householdRepo repository.HouseholdRepository,
	categoryRepo repository.CategoryRepository,
	userRepo authrepo.UserRepository,
) HouseholdUsecase {
	return &householdUsecase{
		householdRepo: householdRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
	}
}

func (u *householdUsecase) SetTaskCounter(counter TaskCounter) {
	u.taskCounter = counter
}

func (u *householdUsecase) ListForUser(userID string) ([]*HouseholdView, error) {
	households, err := u.householdRepo.FindByMember(userID)
	if err != nil {
		return nil, err
	}

	views := make([]*HouseholdView, 0, len(households))
	for _, h := range households {
		members, err := u.userRepo.FindByIDs(h.Members)
		if err != nil {
			return nil, err
		}
		details := make([]MemberProfile, 0, len(members))
		for _, m := range members {
			details = append(details, MemberProfile{ID: m.ID, Name: m.Name, Email: m.Email})
		}
		views = append(views, &HouseholdView{Household: h, MemberDetails: details})
	}
	return views, nil
}

func (u *householdUsecase) Create(userID, name string, isPrivate bool) (*domain.Household, error) {
	household := &domain.Household{
		Name:      name,
		Members:   []string{userID},
		CreatedBy: userID,
		IsPrivate: isPrivate,
	}
	if err := u.householdRepo.Create(household); err != nil {
		return nil, err
	}

	if err := u.createDefaultCategories(household.ID); err != nil {
		return nil, err
	}
	return household, nil
}

// BootstrapPrivateHousehold provisions the private household every new
// account starts with, along with the default categories.
func (u *householdUsecase) BootstrapPrivateHousehold(user *authdomain.User) error {
	_, err := u.Create(user.ID, "My Private Household", true)
	return err
}

func (u *householdUsecase) createDefaultCategories(householdID string) error {
	defaults := []domain.Category{
		{HouseholdID: householdID, Name: "Kitchen", Color: "#ef4444"},
		{HouseholdID: householdID, Name: "Bathroom", Color: "#3b82f6"},
		{HouseholdID: householdID, Name: "Living Room", Color: "#10b981"},
	}
	return u.categoryRepo.CreateBatch(defaults)
}

func (u *householdUsecase) Invite(userID, householdID, email string) (*domain.Household, error) {
	household, err := u.householdRepo.FindByID(householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}
	if household.IsPrivate {
		return nil, ErrPrivateHousehold
	}
	if !household.HasMember(userID) {
		return nil, ErrForbidden
	}

	invitedUser, err := u.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if invitedUser == nil {
		return nil, ErrUserNotFound
	}
	if household.HasMember(invitedUser.ID) {
		return nil, ErrAlreadyMember
	}
	if household.PendingInvite(email) != nil {
		return nil, ErrAlreadyInvited
	}

	household.Invites = append(household.Invites, domain.Invite{
		Email:     email,
		Status:    domain.InviteStatusPending,
		InvitedAt: time.Now(),
	})
	if err := u.householdRepo.Update(household); err != nil {
		return nil, err
	}
	return household, nil
}

func (u *householdUsecase) PendingInvites(userID string) ([]InviteSummary, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	households, err := u.householdRepo.FindWithPendingInvite(user.Email)
	if err != nil {
		return nil, err
	}

	summaries := make([]InviteSummary, 0, len(households))
	for _, h := range households {
		invite := h.PendingInvite(user.Email)
		summaries = append(summaries, InviteSummary{
			HouseholdID:   h.ID,
			HouseholdName: h.Name,
			InvitedAt:     invite.InvitedAt,
		})
	}
	return summaries, nil
}

func (u *householdUsecase) Accept(userID, householdID string) (*domain.Household, error) {
	household, invite, err := u.findInvite(userID, householdID)
	if err != nil {
		return nil, err
	}

	household.Members = append(household.Members, userID)
	invite.Status = domain.InviteStatusAccepted
	if err := u.householdRepo.Update(household); err != nil {
		return nil, err
	}
	return household, nil
}

func (u *householdUsecase) Decline(userID, householdID string) error {
	household, invite, err := u.findInvite(userID, householdID)
	if err != nil {
		return err
	}

	invite.Status = domain.InviteStatusDeclined
	return u.householdRepo.Update(household)
}

func (u *householdUsecase) findInvite(userID, householdID string) (*domain.Household, *domain.Invite, error) {
	household, err := u.householdRepo.FindByID(householdID)
	if err != nil {
		return nil, nil, err
	}
	if household == nil {
		return nil, nil, ErrHouseholdNotFound
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	invite := household.PendingInvite(user.Email)
	if invite == nil {
		return nil, nil, ErrInviteNotFound
	}
	return household, invite, nil
}

func (u *householdUsecase) RemoveMember(actorID, householdID, memberID string) error {
	household, err := u.householdRepo.FindByID(householdID)
	if err != nil {
		return err
	}
	if household == nil {
		return ErrHouseholdNotFound
	}

	// Only the creator or the member themselves may remove a membership.
	if household.CreatedBy != actorID && actorID != memberID {
		return ErrForbidden
	}
	if household.CreatedBy == memberID {
		return ErrCreatorRemoval
	}

	filtered := household.Members[:0]
	for _, m := range household.Members {
		if m != memberID {
			filtered = append(filtered, m)
		}
	}
	household.Members = filtered
	return u.householdRepo.Update(household)
}

// RequireMembership loads a household and verifies the user belongs to it.
func (u *householdUsecase) RequireMembership(userID, householdID string) (*domain.Household, error) {
	household, err := u.householdRepo.FindByID(householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}
	if !household.HasMember(userID) {
		return nil, ErrForbidden
	}
	return household, nil
}

func (u *householdUsecase) ListCategories(userID, householdID string) ([]*domain.Category, error) {
	if _, err := u.RequireMembership(userID, householdID); err != nil {
		return nil, err
	}
	return u.categoryRepo.FindByHousehold(householdID)
}

func (u *householdUsecase) CreateCategory(userID, householdID, name, color string) (*domain.Category, error) {
	if _, err := u.RequireMembership(userID, householdID); err != nil {
		return nil, err
	}

	category := &domain.Category{
		HouseholdID: householdID,
		Name:        name,
		Color:       color,
	}
	if err := u.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *householdUsecase) DeleteCategory(userID, categoryID string) error {
	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if _, err := u.RequireMembership(userID, category.HouseholdID); err != nil {
		return err
	}

	if u.taskCounter != nil {
		count, err := u.taskCounter.CountByCategory(category.HouseholdID, categoryID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
	}

	return u.categoryRepo.Delete(categoryID)
}
