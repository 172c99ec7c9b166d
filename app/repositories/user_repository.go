package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	q *orm.Query
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{q: orm.New(db, nil)}
}

// FindByEmail looks up a user by exact email match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.q.WithContext(ctx).Where("email = ?", email).First(&user)
	if err != nil {
		return nil, classify(err, "User not found")
	}
	return &user, nil
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.q.WithContext(ctx).Where("id = ?", id).First(&user)
	if err != nil {
		return nil, classify(err, "User not found")
	}
	return &user, nil
}

// Create persists a new user. A unique-email violation is AlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.q.WithContext(ctx).Create(user)
	if err != nil && isDuplicate(err) {
		return apperr.Wrap(apperr.AlreadyExists, err, "User already exists")
	}
	return classify(err, "")
}
