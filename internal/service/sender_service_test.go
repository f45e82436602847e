package service

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"

    "github.com/jcbaxter/askbot-devel/internal/repository"
)

func TestSendersVisibleToCached(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := register(t, db, "alice")
    carol, _ := register(t, db, "carol")
    bob, gBob := register(t, db, "bob")

    senderRepo := repository.NewSenderListRepository(db)
    require.NoError(t, senderRepo.RecordSend(ctx, gBob.ID, alice.ID))

    mr := miniredis.RunT(t)
    cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    svc := NewSenderService(senderRepo, cache, 30*time.Second)

    got, err := svc.SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.Len(t, got, 1)
    require.Equal(t, "alice", got[0].Username)
    require.True(t, mr.Exists("senders:"+bob.ID))

    // 缓存命中：TTL 内看不到新写入的 sender
    require.NoError(t, senderRepo.RecordSend(ctx, gBob.ID, carol.ID))
    got, err = svc.SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.Len(t, got, 1)

    // TTL 过期后回源拿到全量
    mr.FastForward(31 * time.Second)
    got, err = svc.SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.Len(t, got, 2)
}

func TestSendersVisibleToWithoutCache(t *testing.T) {
    db := setupTestDB(t)
    ctx := context.Background()
    alice, _ := register(t, db, "alice")
    bob, gBob := register(t, db, "bob")

    senderRepo := repository.NewSenderListRepository(db)
    require.NoError(t, senderRepo.RecordSend(ctx, gBob.ID, alice.ID))

    got, err := NewSenderService(senderRepo, nil, 0).SendersVisibleTo(ctx, bob.ID)
    require.NoError(t, err)
    require.Len(t, got, 1)
}
