package repository

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

// MemoRepository 用户×消息的稀疏覆盖层。
// 状态机：无记录 → seen（浏览或发送时自动）；seen ↔ archived（用户操作）；
// archived → seen（新回复批量触发）。"无记录"永远不落库。
type MemoRepository interface {
    // Create 严格创建，同一 (user, message) 重复创建返回 ErrDuplicate
    Create(ctx context.Context, userID, messageID string, status int8) (*model.MessageMemo, error)
    // SetStatus 幂等 upsert：没有就建，有就改状态
    SetStatus(ctx context.Context, userID, messageID string, status int8) error
    // Get 没有记录时返回 (nil, nil)，缺行本身不是错误
    Get(ctx context.Context, userID, messageID string) (*model.MessageMemo, error)
    // Unarchive 把根消息上所有 archived 的 memo 批量翻回 seen；
    // 没有可翻的就是 no-op
    Unarchive(ctx context.Context, rootMessageID string) error
}

type memoRepository struct{ db *gorm.DB }

func NewMemoRepository(db *gorm.DB) MemoRepository { return &memoRepository{db: db} }

func (r *memoRepository) Create(ctx context.Context, userID, messageID string, status int8) (*model.MessageMemo, error) {
    memo := &model.MessageMemo{
        ID:        uuid.New().String(),
        UserID:    userID,
        MessageID: messageID,
        Status:    status,
    }
    if err := r.db.WithContext(ctx).Create(memo).Error; err != nil {
        return nil, translate(err)
    }
    return memo, nil
}

func (r *memoRepository) SetStatus(ctx context.Context, userID, messageID string, status int8) error {
    memo := &model.MessageMemo{
        ID:        uuid.New().String(),
        UserID:    userID,
        MessageID: messageID,
        Status:    status,
    }
    return r.db.WithContext(ctx).
        Clauses(clause.OnConflict{
            Columns: []clause.Column{{Name: "user_id"}, {Name: "message_id"}},
            DoUpdates: clause.Assignments(map[string]interface{}{
                "status":     status,
                "updated_at": time.Now(),
            }),
        }).
        Create(memo).Error
}

func (r *memoRepository) Get(ctx context.Context, userID, messageID string) (*model.MessageMemo, error) {
    var memo model.MessageMemo
    err := r.db.WithContext(ctx).
        Where("user_id = ? AND message_id = ?", userID, messageID).
        First(&memo).Error
    if err != nil {
        if translate(err) == ErrNotFound {
            return nil, nil
        }
        return nil, err
    }
    return &memo, nil
}

func (r *memoRepository) Unarchive(ctx context.Context, rootMessageID string) error {
    return r.db.WithContext(ctx).
        Model(&model.MessageMemo{}).
        Where("message_id = ? AND status = ?", rootMessageID, model.MemoStatusArchived).
        Update("status", model.MemoStatusSeen).Error
}
