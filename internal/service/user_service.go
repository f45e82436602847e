package service

import (
    "context"

    "gorm.io/gorm"

    "github.com/jcbaxter/askbot-devel/internal/model"
    "github.com/jcbaxter/askbot-devel/internal/repository"
)

// UserService 引导便利：建用户的同时把个人组也建好，
// 让新用户立刻可被私信
type UserService struct {
    db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) Register(ctx context.Context, username string) (*model.User, error) {
    var out *model.User
    err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        u, err := repository.NewUserRepository(tx).Create(ctx, username)
        if err != nil {
            return err
        }
        if _, err := repository.NewGroupDirectory(tx).CreatePersonalGroup(ctx, u); err != nil {
            return err
        }
        out = u
        return nil
    })
    return out, err
}
