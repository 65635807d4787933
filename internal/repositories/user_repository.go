package repositories

import (
	"context"

	"nightfly_backend/internal/database"
	"nightfly_backend/internal/models"
)

// UserRepository defines the interface for customer profile persistence.
type UserRepository interface {
	GetUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpsertUser(ctx context.Context, user *models.User) error
}

type userRepository struct {
	store database.Store
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(store database.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	user := &models.User{}
	if err := r.store.Get(ctx, database.Users, mobile, user); err != nil {
		return nil, translateStoreError(err, "getting user "+mobile)
	}
	return user, nil
}

func (r *userRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.store.Find(ctx, database.Users, nil, &users); err != nil {
		return nil, translateStoreError(err, "querying users")
	}
	return users, nil
}

// UpsertUser replaces the whole document keyed by mobile.
func (r *userRepository) UpsertUser(ctx context.Context, user *models.User) error {
	return translateStoreError(r.store.Upsert(ctx, database.Users, user.Mobile, user), "upserting user "+user.Mobile)
}
