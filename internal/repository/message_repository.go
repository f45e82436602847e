package repository

import (
    "context"
    "time"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

// MessageRepository 消息图持久化：消息行、收件组扇出对、root 元数据、
// 以及两个面向用户的会话视图查询
type MessageRepository interface {
    Create(ctx context.Context, m *model.Message) error
    Get(ctx context.Context, id string) (*model.Message, error)
    // AddRecipient 幂等地把组挂到消息的收件集合上
    AddRecipient(ctx context.Context, messageID, groupID string) error
    // RecipientGroupIDs 返回消息当前的收件组 id
    RecipientGroupIDs(ctx context.Context, messageID string) ([]string, error)
    // UpdateRootMeta 回复追加时刷新 root 的活跃时间与贡献者串
    UpdateRootMeta(ctx context.Context, rootID string, lastActiveAt time.Time, sendersInfo string) error
    // GetThreads 重建某个用户可见（或已归档）的会话根集合
    GetThreads(ctx context.Context, recipientID, senderID string, deleted bool) ([]*model.Message, error)
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
    return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepository) Get(ctx context.Context, id string) (*model.Message, error) {
    var m model.Message
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
        return nil, translate(err)
    }
    return &m, nil
}

func (r *messageRepository) AddRecipient(ctx context.Context, messageID, groupID string) error {
    return r.db.WithContext(ctx).Table("message_recipients").
        Clauses(clause.OnConflict{DoNothing: true}).
        Create(map[string]interface{}{"message_id": messageID, "group_id": groupID}).Error
}

func (r *messageRepository) RecipientGroupIDs(ctx context.Context, messageID string) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).Table("message_recipients").
        Where("message_id = ?", messageID).
        Pluck("group_id", &ids).Error
    return ids, err
}

func (r *messageRepository) UpdateRootMeta(ctx context.Context, rootID string, lastActiveAt time.Time, sendersInfo string) error {
    return r.db.WithContext(ctx).
        Model(&model.Message{}).
        Where("id = ?", rootID).
        Updates(map[string]interface{}{
            "last_active_at": lastActiveAt,
            "senders_info":   sendersInfo,
        }).Error
}

// GetThreads 基础过滤：只取会话根（root_id IS NULL）、stored 类型、
// 收件组与用户所属组有交集的消息；senderID 非空时再按发送者过滤。
//
// deleted=true 直接内连 archived memo 即可——"已删除"一定有 memo 行。
// deleted=false 则必须覆盖两种情况：有 memo 且状态为 seen，或压根没有
// memo（从未交互，默认可见、未读）。普通的状态等值过滤表达不了
// "seen 或无行"，这里用 LEFT JOIN + NULL 判断一次取齐。
func (r *messageRepository) GetThreads(ctx context.Context, recipientID, senderID string, deleted bool) ([]*model.Message, error) {
    recipientGroups := r.db.Table("user_groups").
        Select("user_groups.group_id").
        Where("user_groups.user_id = ?", recipientID)
    fanout := r.db.Table("message_recipients").
        Select("message_recipients.message_id").
        Where("message_recipients.group_id IN (?)", recipientGroups)

    q := r.db.WithContext(ctx).
        Model(&model.Message{}).
        Where("messages.root_id IS NULL").
        Where("messages.message_type = ?", model.MessageTypeStored).
        Where("messages.id IN (?)", fanout)
    if senderID != "" {
        q = q.Where("messages.sender_id = ?", senderID)
    }

    if deleted {
        q = q.
            Joins("JOIN message_memos memos ON memos.message_id = messages.id AND memos.user_id = ?", recipientID).
            Where("memos.status = ?", model.MemoStatusArchived)
    } else {
        q = q.
            Joins("LEFT JOIN message_memos memos ON memos.message_id = messages.id AND memos.user_id = ?", recipientID).
            Where("memos.id IS NULL OR memos.status = ?", model.MemoStatusSeen)
    }

    var res []*model.Message
    err := q.Order("messages.last_active_at DESC").Find(&res).Error
    return res, err
}
