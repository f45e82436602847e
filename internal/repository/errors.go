package repository

import (
    "errors"

    "gorm.io/gorm"
)

var (
    // ErrNotFound 查询未命中（组/用户/消息不存在）
    ErrNotFound = errors.New("record not found")
    // ErrDuplicate 唯一约束冲突（绕过幂等 upsert 路径的重复写入）
    ErrDuplicate = errors.New("duplicate record")
)

// translate 把 gorm 的错误翻译成仓储层哨兵错误
func translate(err error) error {
    switch {
    case err == nil:
        return nil
    case errors.Is(err, gorm.ErrRecordNotFound):
        return ErrNotFound
    case errors.Is(err, gorm.ErrDuplicatedKey):
        return ErrDuplicate
    default:
        return err
    }
}
