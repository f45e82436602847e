package repository

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

// LastVisitRepository 记录用户对会话的最后访问时间，(user, message) 唯一
type LastVisitRepository interface {
    Touch(ctx context.Context, userID, messageID string) error
    Get(ctx context.Context, userID, messageID string) (*model.LastVisitTime, error)
}

type lastVisitRepository struct{ db *gorm.DB }

func NewLastVisitRepository(db *gorm.DB) LastVisitRepository {
    return &lastVisitRepository{db: db}
}

func (r *lastVisitRepository) Touch(ctx context.Context, userID, messageID string) error {
    visit := &model.LastVisitTime{
        ID:        uuid.New().String(),
        UserID:    userID,
        MessageID: messageID,
        At:        time.Now(),
    }
    return r.db.WithContext(ctx).
        Clauses(clause.OnConflict{
            Columns:   []clause.Column{{Name: "user_id"}, {Name: "message_id"}},
            DoUpdates: clause.Assignments(map[string]interface{}{"at": visit.At}),
        }).
        Create(visit).Error
}

func (r *lastVisitRepository) Get(ctx context.Context, userID, messageID string) (*model.LastVisitTime, error) {
    var visit model.LastVisitTime
    err := r.db.WithContext(ctx).
        Where("user_id = ? AND message_id = ?", userID, messageID).
        First(&visit).Error
    if err != nil {
        return nil, translate(err)
    }
    return &visit, nil
}
