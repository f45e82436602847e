package repository

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/jcbaxter/askbot-devel/internal/model"
    "github.com/jcbaxter/askbot-devel/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
    require.NoError(t, err)
    // :memory: 每个连接各自一套库，收紧到单连接
    sqlDB, err := db.DB()
    require.NoError(t, err)
    sqlDB.SetMaxOpenConns(1)
    require.NoError(t, database.Migrate(db))
    return db
}

// seedUser 建用户并顺手建好个人组
func seedUser(t *testing.T, db *gorm.DB, username string) (*model.User, *model.Group) {
    t.Helper()
    ctx := context.Background()
    u, err := NewUserRepository(db).Create(ctx, username)
    require.NoError(t, err)
    g, err := NewGroupDirectory(db).CreatePersonalGroup(ctx, u)
    require.NoError(t, err)
    return u, g
}
