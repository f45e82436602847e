package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

// SenderListRepository 维护"谁给这个组发过信"的反规范化索引
type SenderListRepository interface {
    // RecordSend 登记一次发送：get-or-create 组的 SenderList 行，
    // 再把发送者幂等地加入 senders 集合
    RecordSend(ctx context.Context, recipientGroupID, senderID string) error
    // SendersVisibleTo 对用户所属全部组的 senders 集合求并集去重，
    // 不保证顺序
    SendersVisibleTo(ctx context.Context, userID string) ([]*model.User, error)
}

type senderListRepository struct{ db *gorm.DB }

func NewSenderListRepository(db *gorm.DB) SenderListRepository {
    return &senderListRepository{db: db}
}

func (r *senderListRepository) RecordSend(ctx context.Context, recipientGroupID, senderID string) error {
    // 幂等：并发首发同一个组时只会落一行（recipient_id 唯一键兜底）
    sl := &model.SenderList{ID: uuid.New().String(), RecipientID: recipientGroupID}
    err := r.db.WithContext(ctx).
        Clauses(clause.OnConflict{DoNothing: true}).
        Create(sl).Error
    if err != nil {
        return err
    }
    // re-read: our insert may have lost the race, take the canonical row
    var row model.SenderList
    err = r.db.WithContext(ctx).
        Where("recipient_id = ?", recipientGroupID).
        First(&row).Error
    if err != nil {
        return translate(err)
    }
    return r.db.WithContext(ctx).Table("sender_list_senders").
        Clauses(clause.OnConflict{DoNothing: true}).
        Create(map[string]interface{}{"sender_list_id": row.ID, "user_id": senderID}).Error
}

func (r *senderListRepository) SendersVisibleTo(ctx context.Context, userID string) ([]*model.User, error) {
    var res []*model.User
    err := r.db.WithContext(ctx).
        Model(&model.User{}).
        Distinct("users.*").
        Joins("JOIN sender_list_senders sls ON sls.user_id = users.id").
        Joins("JOIN sender_lists sl ON sl.id = sls.sender_list_id").
        Joins("JOIN user_groups ug ON ug.group_id = sl.recipient_id").
        Where("ug.user_id = ?", userID).
        Find(&res).Error
    return res, err
}
