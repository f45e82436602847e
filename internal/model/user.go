package model

import "time"

// User 用户（身份与账号管理由外部系统负责，这里只保留查询与展示所需的最小字段）
type User struct {
    ID        string  `gorm:"primaryKey;type:varchar(36)"`
    Username  string  `gorm:"type:varchar(64);uniqueIndex;not null"`
    Groups    []Group `gorm:"many2many:user_groups;"`
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
