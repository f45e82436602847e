package main

import (
    "context"
    "fmt"
    "math"
    "math/rand"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/jcbaxter/askbot-devel/config"
    "github.com/jcbaxter/askbot-devel/internal/model"
    "github.com/jcbaxter/askbot-devel/internal/repository"
    "github.com/jcbaxter/askbot-devel/internal/service"
    "github.com/jcbaxter/askbot-devel/pkg/database"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func envInt(name string, def int) int {
    if s := os.Getenv(name); s != "" {
        if n, err := strconv.Atoi(s); err == nil && n > 0 { return n }
    }
    return def
}

// 本地基准：一条广播会话扇出到 N 个个人组的代价，
// 以及回复与收件箱查询的延迟分布
func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))
    ctx := context.Background()

    N := envInt("N", 2000)
    REPLIES := envInt("REPLIES", 500)
    SAMPLE := envInt("SAMPLE", 100)

    userSvc := service.NewUserService(db)
    msgSvc := service.NewMessageService(db, service.PlainRenderer{})
    groupDir := repository.NewGroupDirectory(db)

    // seed users, each with a personal group
    users := make([]*model.User, N)
    userIDs := make([]string, N)
    for i := range users {
        users[i] = must(userSvc.Register(ctx, fmt.Sprintf("u%06d", i)))
        userIDs[i] = users[i].ID
    }

    groups := must(groupDir.ResolvePersonalGroups(ctx, userIDs))
    groupIDs := make([]string, len(groups))
    for i, g := range groups { groupIDs[i] = g.ID }

    // one send, N-group fanout: the whole point of group addressing
    t0 := time.Now()
    root := must(msgSvc.CreateThread(ctx, users[0].ID, groupIDs, "broadcast: group-addressed fanout benchmark"))
    fmt.Printf("create_thread fanout=%d: %v\n", len(groupIDs), time.Since(t0))

    replyRecs := make([]time.Duration, 0, REPLIES)
    for i := 0; i < REPLIES; i++ {
        u := users[rand.Intn(N)]
        st := time.Now()
        if _, err := msgSvc.CreateResponse(ctx, u.ID, fmt.Sprintf("reply %d", i), root.ID); err != nil {
            panic(err)
        }
        replyRecs = append(replyRecs, time.Since(st))
    }

    listRecs := make([]time.Duration, 0, SAMPLE)
    for i := 0; i < SAMPLE; i++ {
        u := users[rand.Intn(N)]
        st := time.Now()
        if _, err := msgSvc.GetThreads(ctx, u.ID, "", false); err != nil {
            panic(err)
        }
        listRecs = append(listRecs, time.Since(st))
    }

    senderRepo := repository.NewSenderListRepository(db)
    q0 := time.Now()
    senders := must(senderRepo.SendersVisibleTo(ctx, users[0].ID))
    sendersDur := time.Since(q0)

    pct := func(vs []time.Duration, p float64) time.Duration {
        if len(vs) == 0 { return 0 }
        xs := append([]time.Duration(nil), vs...)
        sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
        k := int(math.Ceil(p*float64(len(xs)))) - 1
        if k < 0 { k = 0 }
        if k >= len(xs) { k = len(xs) - 1 }
        return xs[k]
    }

    fmt.Printf("N=%d, REPLIES=%d, SAMPLE=%d\n", N, REPLIES, SAMPLE)
    fmt.Printf("create_response: p50=%v, p95=%v, p99=%v\n",
        pct(replyRecs, 0.50), pct(replyRecs, 0.95), pct(replyRecs, 0.99))
    fmt.Printf("get_threads: p50=%v, p95=%v, p99=%v\n",
        pct(listRecs, 0.50), pct(listRecs, 0.95), pct(listRecs, 0.99))
    fmt.Printf("senders_visible_to: %d senders, %v\n", len(senders), sendersDur)
}
