package model

import "time"

// SenderList 反规范化索引：每个收件组至多一条，记录所有给该组发过信的
// 用户。随发送自动维护，只增不减，用于"谁能给我发消息"的预览查询，
// 避免扫消息表。
type SenderList struct {
    ID          string `gorm:"primaryKey;type:varchar(36)"`
    RecipientID string `gorm:"type:varchar(36);uniqueIndex;not null"`
    Recipient   *Group `gorm:"foreignKey:RecipientID"`
    Senders     []User `gorm:"many2many:sender_list_senders;"`
    CreatedAt   time.Time
    UpdatedAt   time.Time
}

func (SenderList) TableName() string { return "sender_lists" }
