package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

// GroupDirectory 组目录：个人组的解析与创建。组成员关系由外部身份系统
// 拥有，这里只消费它落在关系库里的数据。
type GroupDirectory interface {
    // CreatePersonalGroup 为用户创建个人组并把用户加入其中。
    // 不保证幂等：重复创建由调用方避免，冲突返回 ErrDuplicate。
    CreatePersonalGroup(ctx context.Context, user *model.User) (*model.Group, error)
    // ResolvePersonalGroup 找不到时返回 ErrNotFound
    ResolvePersonalGroup(ctx context.Context, userID string) (*model.Group, error)
    // ResolvePersonalGroups 批量解析，缺失的用户直接跳过
    ResolvePersonalGroups(ctx context.Context, userIDs []string) ([]*model.Group, error)
    // GroupsOf 返回用户所属的全部组
    GroupsOf(ctx context.Context, userID string) ([]*model.Group, error)
}

type groupDirectory struct{ db *gorm.DB }

func NewGroupDirectory(db *gorm.DB) GroupDirectory { return &groupDirectory{db: db} }

func (d *groupDirectory) CreatePersonalGroup(ctx context.Context, user *model.User) (*model.Group, error) {
    g := &model.Group{ID: uuid.New().String(), Name: model.PersonalGroupName(user.ID)}
    if err := d.db.WithContext(ctx).Create(g).Error; err != nil {
        return nil, translate(err)
    }
    err := d.db.WithContext(ctx).Table("user_groups").
        Clauses(clause.OnConflict{DoNothing: true}).
        Create(map[string]interface{}{"user_id": user.ID, "group_id": g.ID}).Error
    if err != nil {
        return nil, err
    }
    return g, nil
}

func (d *groupDirectory) ResolvePersonalGroup(ctx context.Context, userID string) (*model.Group, error) {
    var g model.Group
    err := d.db.WithContext(ctx).
        Where("name = ?", model.PersonalGroupName(userID)).
        First(&g).Error
    if err != nil {
        return nil, translate(err)
    }
    return &g, nil
}

func (d *groupDirectory) ResolvePersonalGroups(ctx context.Context, userIDs []string) ([]*model.Group, error) {
    names := make([]string, len(userIDs))
    for i, id := range userIDs {
        names[i] = model.PersonalGroupName(id)
    }
    var res []*model.Group
    err := d.db.WithContext(ctx).Where("name IN ?", names).Find(&res).Error
    return res, err
}

func (d *groupDirectory) GroupsOf(ctx context.Context, userID string) ([]*model.Group, error) {
    var res []*model.Group
    err := d.db.WithContext(ctx).
        Joins("JOIN user_groups ug ON ug.group_id = groups.id").
        Where("ug.user_id = ?", userID).
        Find(&res).Error
    return res, err
}
