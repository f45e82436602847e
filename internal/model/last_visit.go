package model

import "time"

// LastVisitTime 记录用户最后一次访问某会话的时间
type LastVisitTime struct {
    ID     string `gorm:"primaryKey;type:varchar(36)"`
    UserID string `gorm:"type:varchar(36);index:idx_last_visit_pair,unique;not null"`
    // idx_last_visit_pair = (user_id, message_id)
    MessageID string    `gorm:"type:varchar(36);not null;index:idx_last_visit_pair,unique"`
    At        time.Time `gorm:"not null"`
}

func (LastVisitTime) TableName() string { return "last_visit_times" }
