package model

import "time"

// PersonalGroupPrefix 个人组命名约定：_personal_<user_id>
const PersonalGroupPrefix = "_personal_"

// PersonalGroupName returns the reserved group name for a user's
// direct-message address.
func PersonalGroupName(userID string) string { return PersonalGroupPrefix + userID }

// Group 收件组；消息按组扇出而不是按人展开。
// 个人组与用户一一对应，作为私信的投递地址
type Group struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    Name      string `gorm:"type:varchar(80);uniqueIndex;not null"`
    Members   []User `gorm:"many2many:user_groups;"`
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (Group) TableName() string { return "groups" }
