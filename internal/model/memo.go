package model

import "time"

// memo 状态
const (
    MemoStatusSeen     int8 = 0
    MemoStatusArchived int8 = 1
)

// MessageMemo 稀疏的 (user, message) 覆盖层：只在用户真正与消息交互过之后
// 才会产生记录。借助按组收件，一条消息可以发给海量用户而不在发送时
// 逐人写行；"没有 memo" 即默认可见、未读。
type MessageMemo struct {
    ID     string `gorm:"primaryKey;type:varchar(36)"`
    UserID string `gorm:"type:varchar(36);index:idx_memo_pair,unique;not null"`
    // 复合唯一键，同一 (user, message) 至多一条
    // idx_memo_pair = (user_id, message_id)
    MessageID string `gorm:"type:varchar(36);not null;index:idx_memo_pair,unique;index:idx_memo_message"`
    Status    int8   `gorm:"not null;default:0"`
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (MessageMemo) TableName() string { return "message_memos" }
