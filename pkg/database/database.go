package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/jcbaxter/askbot-devel/config"
    "github.com/jcbaxter/askbot-devel/internal/model"
)

// InitDB 按配置打开数据库并迁移表结构。
// TranslateError 打开后唯一键冲突统一成 gorm.ErrDuplicatedKey，
// 仓储层靠它翻译成 ErrDuplicate。
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var dialector gorm.Dialector
    switch cfg.Database.Driver {
    case "postgres":
        dialector = postgres.Open(cfg.Database.DSN)
    case "sqlite", "":
        dialector = sqlite.Open(cfg.Database.DSN)
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }

    db, err := gorm.Open(dialector, &gorm.Config{
        TranslateError: true,
        Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
    })
    if err != nil {
        return nil, err
    }
    if err := Migrate(db); err != nil {
        return nil, err
    }
    return db, nil
}

// Migrate 建全部表（含 many2many 关联表）
func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &model.User{},
        &model.Group{},
        &model.Message{},
        &model.MessageMemo{},
        &model.SenderList{},
        &model.LastVisitTime{},
    )
}
