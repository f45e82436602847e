package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

type UserRepository interface {
    Create(ctx context.Context, username string) (*model.User, error)
    Get(ctx context.Context, id string) (*model.User, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, username string) (*model.User, error) {
    u := &model.User{ID: uuid.New().String(), Username: username}
    if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
        return nil, translate(err)
    }
    return u, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
        return nil, translate(err)
    }
    return &u, nil
}
