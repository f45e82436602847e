package model

import "time"

// 消息类型
const (
    MessageTypeStored    int8 = 0 // email-like, kept in the inbox
    MessageTypeTemporary int8 = 1 // shown until active_until
    MessageTypeOneTime   int8 = 2 // shown just once
)

// 截断上限（硬截断，不按词边界）
const (
    MaxHeadlineLength    = 80
    MaxSendersInfoLength = 64
)

// Message 消息主体：同一 root 下的所有消息构成一个会话（thread）
type Message struct {
    ID          string `gorm:"primaryKey;type:varchar(36)"`
    MessageType int8   `gorm:"index;not null;default:0"`
    SenderID    string `gorm:"type:varchar(36);index:idx_message_sender;not null"`
    Sender      *User  `gorm:"foreignKey:SenderID"`
    // 最近回复者在前的逗号分隔名单，只在 root 上维护
    SendersInfo string  `gorm:"type:varchar(64);not null;default:''"`
    Recipients  []Group `gorm:"many2many:message_recipients;"`
    // RootID 为空 ⇔ 本消息就是会话根；否则指向会话最顶端的祖先
    // idx_message_root 支撑按会话取子孙/备忘
    RootID       *string `gorm:"type:varchar(36);index:idx_message_root"`
    ParentID     *string `gorm:"type:varchar(36)"`
    Headline     string  `gorm:"type:varchar(80);not null"`
    Text         string  `gorm:"type:text"`
    HTML         string  `gorm:"type:text"`
    SentAt       time.Time `gorm:"autoCreateTime"`
    LastActiveAt time.Time `gorm:"index"`
    ActiveUntil  *time.Time
}

func (Message) TableName() string { return "messages" }

// IsRoot 是否为会话根
func (m *Message) IsRoot() bool { return m.RootID == nil }
