package repository

import (
    "context"
    "sync"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

func senderUsernames(users []*model.User) []string {
    names := make([]string, len(users))
    for i, u := range users {
        names[i] = u.Username
    }
    return names
}

func TestRecordSendMonotonic(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    carol, _ := seedUser(t, db, "carol")
    bob, gBob := seedUser(t, db, "bob")

    senders := NewSenderListRepository(db)
    // 重复登记不膨胀，顺序无关
    for i := 0; i < 5; i++ {
        require.NoError(t, senders.RecordSend(ctx, gBob.ID, alice.ID))
        require.NoError(t, senders.RecordSend(ctx, gBob.ID, carol.ID))
    }

    got, err := senders.SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.ElementsMatch(t, []string{"alice", "carol"}, senderUsernames(got))

    var cnt int64
    require.NoError(t, db.Model(&model.SenderList{}).
        Where("recipient_id = ?", gBob.ID).
        Count(&cnt).Error)
    require.EqualValues(t, 1, cnt)
}

func TestRecordSendConcurrentFirstSend(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    carol, _ := seedUser(t, db, "carol")
    bob, gBob := seedUser(t, db, "bob")

    senders := NewSenderListRepository(db)
    var wg sync.WaitGroup
    errs := make(chan error, 40)
    for i := 0; i < 20; i++ {
        wg.Add(2)
        go func() {
            defer wg.Done()
            errs <- senders.RecordSend(ctx, gBob.ID, alice.ID)
        }()
        go func() {
            defer wg.Done()
            errs <- senders.RecordSend(ctx, gBob.ID, carol.ID)
        }()
    }
    wg.Wait()
    close(errs)
    for err := range errs {
        require.NoError(t, err)
    }

    // 竞争之下也只允许一行 SenderList
    var cnt int64
    require.NoError(t, db.Model(&model.SenderList{}).
        Where("recipient_id = ?", gBob.ID).
        Count(&cnt).Error)
    require.EqualValues(t, 1, cnt)

    got, err := senders.SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.ElementsMatch(t, []string{"alice", "carol"}, senderUsernames(got))
}

func TestSendersVisibleToUnionsGroupsDistinct(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    bob, gBob := seedUser(t, db, "bob")

    // bob 额外加入一个普通组，alice 给两个组都发过信
    team := &model.Group{ID: "team-g", Name: "team"}
    require.NoError(t, db.Create(team).Error)
    require.NoError(t, db.Table("user_groups").
        Create(map[string]interface{}{"user_id": bob.ID, "group_id": team.ID}).Error)

    senders := NewSenderListRepository(db)
    require.NoError(t, senders.RecordSend(ctx, gBob.ID, alice.ID))
    require.NoError(t, senders.RecordSend(ctx, team.ID, alice.ID))

    got, err := senders.SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.Len(t, got, 1)
    require.Equal(t, "alice", got[0].Username)
}
