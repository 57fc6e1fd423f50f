package usecase

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authdomain "chorehub-backend/internal/auth/domain"
	hhdomain "chorehub-backend/internal/household/domain"
	hhusecase "chorehub-backend/internal/household/usecase"
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

// fakeMembership approves every user unless deny is set
type fakeMembership struct {
	deny bool
}

func (f *fakeMembership) RequireMembership(userID, householdID string) (*hhdomain.Household, error) {
	if f.deny {
		return nil, hhusecase.ErrForbidden
	}
	return &hhdomain.Household{ID: householdID, Members: []string{userID}}, nil
}

// fakeDirectory resolves member ids from a fixed map
type fakeDirectory struct {
	users map[string]authdomain.User
}

func (f *fakeDirectory) FindByIDs(ids []string) ([]authdomain.User, error) {
	var users []authdomain.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}
