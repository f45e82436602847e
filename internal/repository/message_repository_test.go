package repository

import (
    "context"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/jcbaxter/askbot-devel/internal/model"
)

// seedRoot 直接落一条会话根并挂上收件组
func seedRoot(t *testing.T, db *gorm.DB, senderID string, groupIDs ...string) *model.Message {
    t.Helper()
    ctx := context.Background()
    msgs := NewMessageRepository(db)
    now := time.Now()
    m := &model.Message{
        ID:           uuid.New().String(),
        MessageType:  model.MessageTypeStored,
        SenderID:     senderID,
        Headline:     "t",
        Text:         "t",
        HTML:         "t",
        SentAt:       now,
        LastActiveAt: now,
    }
    require.NoError(t, msgs.Create(ctx, m))
    for _, gid := range groupIDs {
        require.NoError(t, msgs.AddRecipient(ctx, m.ID, gid))
    }
    return m
}

func threadIDs(ms []*model.Message) []string {
    ids := make([]string, len(ms))
    for i, m := range ms {
        ids[i] = m.ID
    }
    return ids
}

func TestGetThreadsVisibleCoversSeenAndMemoless(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    bob, gBob := seedUser(t, db, "bob")

    m := seedRoot(t, db, alice.ID, gBob.ID)
    memos := NewMemoRepository(db)
    msgs := NewMessageRepository(db)

    // 没有任何 memo：默认可见
    got, err := msgs.GetThreads(ctx, bob.ID, "", false)
    require.NoError(t, err)
    require.Contains(t, threadIDs(got), m.ID)

    // seen memo：依旧可见
    require.NoError(t, memos.SetStatus(ctx, bob.ID, m.ID, model.MemoStatusSeen))
    got, err = msgs.GetThreads(ctx, bob.ID, "", false)
    require.NoError(t, err)
    require.Contains(t, threadIDs(got), m.ID)

    // archived：从收件箱消失，出现在已删除视图
    require.NoError(t, memos.SetStatus(ctx, bob.ID, m.ID, model.MemoStatusArchived))
    got, err = msgs.GetThreads(ctx, bob.ID, "", false)
    require.NoError(t, err)
    require.NotContains(t, threadIDs(got), m.ID)
    got, err = msgs.GetThreads(ctx, bob.ID, "", true)
    require.NoError(t, err)
    require.Contains(t, threadIDs(got), m.ID)
}

func TestGetThreadsDeletedRequiresArchivedMemo(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    bob, gBob := seedUser(t, db, "bob")

    m := seedRoot(t, db, alice.ID, gBob.ID)
    msgs := NewMessageRepository(db)

    // 无 memo 与 seen memo 都不算"已删除"
    got, err := msgs.GetThreads(ctx, bob.ID, "", true)
    require.NoError(t, err)
    require.Empty(t, got)

    require.NoError(t, NewMemoRepository(db).SetStatus(ctx, bob.ID, m.ID, model.MemoStatusSeen))
    got, err = msgs.GetThreads(ctx, bob.ID, "", true)
    require.NoError(t, err)
    require.Empty(t, got)
}

func TestGetThreadsFiltersBySender(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    carol, _ := seedUser(t, db, "carol")
    bob, gBob := seedUser(t, db, "bob")

    mA := seedRoot(t, db, alice.ID, gBob.ID)
    mC := seedRoot(t, db, carol.ID, gBob.ID)

    got, err := NewMessageRepository(db).GetThreads(ctx, bob.ID, alice.ID, false)
    require.NoError(t, err)
    require.Equal(t, []string{mA.ID}, threadIDs(got))

    got, err = NewMessageRepository(db).GetThreads(ctx, bob.ID, carol.ID, false)
    require.NoError(t, err)
    require.Equal(t, []string{mC.ID}, threadIDs(got))
}

func TestGetThreadsReturnsOnlyStoredRoots(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    bob, gBob := seedUser(t, db, "bob")

    root := seedRoot(t, db, alice.ID, gBob.ID)

    // 子消息：root_id 非空，不是会话
    msgs := NewMessageRepository(db)
    child := &model.Message{
        ID:          uuid.New().String(),
        MessageType: model.MessageTypeStored,
        SenderID:    alice.ID,
        RootID:      &root.ID,
        ParentID:    &root.ID,
        Headline:    "c",
        Text:        "c",
    }
    require.NoError(t, msgs.Create(ctx, child))
    require.NoError(t, msgs.AddRecipient(ctx, child.ID, gBob.ID))

    // 非 stored 类型也被基础过滤排除
    temp := &model.Message{
        ID:          uuid.New().String(),
        MessageType: model.MessageTypeTemporary,
        SenderID:    alice.ID,
        Headline:    "x",
        Text:        "x",
    }
    require.NoError(t, msgs.Create(ctx, temp))
    require.NoError(t, msgs.AddRecipient(ctx, temp.ID, gBob.ID))

    got, err := msgs.GetThreads(ctx, bob.ID, "", false)
    require.NoError(t, err)
    require.Equal(t, []string{root.ID}, threadIDs(got))
}

func TestGetThreadsUserWithoutGroups(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    loner, err := NewUserRepository(db).Create(ctx, "loner")
    require.NoError(t, err)
    seedRoot(t, db, alice.ID)

    got, err := NewMessageRepository(db).GetThreads(ctx, loner.ID, "", false)
    require.NoError(t, err)
    require.Empty(t, got)
}

func TestMemoPairUnique(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    bob, gBob := seedUser(t, db, "bob")
    m := seedRoot(t, db, alice.ID, gBob.ID)

    memos := NewMemoRepository(db)
    _, err := memos.Create(ctx, bob.ID, m.ID, model.MemoStatusSeen)
    require.NoError(t, err)
    _, err = memos.Create(ctx, bob.ID, m.ID, model.MemoStatusArchived)
    require.ErrorIs(t, err, ErrDuplicate)

    var cnt int64
    require.NoError(t, db.Model(&model.MessageMemo{}).
        Where("user_id = ? AND message_id = ?", bob.ID, m.ID).
        Count(&cnt).Error)
    require.EqualValues(t, 1, cnt)
}

func TestAddRecipientIdempotent(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    _, gBob := seedUser(t, db, "bob")
    m := seedRoot(t, db, alice.ID)

    msgs := NewMessageRepository(db)
    require.NoError(t, msgs.AddRecipient(ctx, m.ID, gBob.ID))
    require.NoError(t, msgs.AddRecipient(ctx, m.ID, gBob.ID))

    ids, err := msgs.RecipientGroupIDs(ctx, m.ID)
    require.NoError(t, err)
    require.Equal(t, []string{gBob.ID}, ids)
}

func TestLastVisitUpsert(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := seedUser(t, db, "alice")
    bob, gBob := seedUser(t, db, "bob")
    m := seedRoot(t, db, alice.ID, gBob.ID)

    visits := NewLastVisitRepository(db)
    require.NoError(t, visits.Touch(ctx, bob.ID, m.ID))
    first, err := visits.Get(ctx, bob.ID, m.ID)
    require.NoError(t, err)

    time.Sleep(5 * time.Millisecond)
    require.NoError(t, visits.Touch(ctx, bob.ID, m.ID))
    second, err := visits.Get(ctx, bob.ID, m.ID)
    require.NoError(t, err)
    require.True(t, second.At.After(first.At))

    var cnt int64
    require.NoError(t, db.Model(&model.LastVisitTime{}).
        Where("user_id = ? AND message_id = ?", bob.ID, m.ID).
        Count(&cnt).Error)
    require.EqualValues(t, 1, cnt)
}

func TestResolvePersonalGroup(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, gAlice := seedUser(t, db, "alice")

    dir := NewGroupDirectory(db)
    g, err := dir.ResolvePersonalGroup(ctx, alice.ID)
    require.NoError(t, err)
    require.Equal(t, gAlice.ID, g.ID)

    _, err = dir.ResolvePersonalGroup(ctx, "no-such-user")
    require.ErrorIs(t, err, ErrNotFound)
}
