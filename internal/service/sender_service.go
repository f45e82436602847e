package service

import (
    "context"
    "encoding/json"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/jcbaxter/askbot-devel/internal/repository"
    "github.com/jcbaxter/askbot-devel/pkg/logger"
)

// SenderSnapshot contains the minimal user info inbox previews need.
type SenderSnapshot struct {
    ID       string `json:"id"`
    Username string `json:"username"`
}

// SenderService "谁能给我发消息"读路径。读多写少，套一层 Redis
// 读穿缓存；缓存不可用时退回数据库，不影响正确性。
type SenderService struct {
    repo  repository.SenderListRepository
    cache *redis.Client
    ttl   time.Duration
}

// NewSenderService cache 传 nil 即纯数据库路径
func NewSenderService(repo repository.SenderListRepository, cache *redis.Client, ttl time.Duration) *SenderService {
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    return &SenderService{repo: repo, cache: cache, ttl: ttl}
}

func (s *SenderService) SendersVisibleTo(ctx context.Context, userID string) ([]SenderSnapshot, error) {
    key := "senders:" + userID
    if s.cache != nil {
        if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
            var out []SenderSnapshot
            if uErr := json.Unmarshal(data, &out); uErr == nil {
                return out, nil
            }
        }
    }

    users, err := s.repo.SendersVisibleTo(ctx, userID)
    if err != nil {
        return nil, err
    }
    out := make([]SenderSnapshot, 0, len(users))
    for _, u := range users {
        out = append(out, SenderSnapshot{ID: u.ID, Username: u.Username})
    }

    if s.cache != nil {
        if payload, err := json.Marshal(out); err == nil {
            if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
                logger.Warn("sender cache set failed", zap.String("user", userID), zap.Error(err))
            }
        }
    }
    return out, nil
}
