package service

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/jcbaxter/askbot-devel/internal/model"
    "github.com/jcbaxter/askbot-devel/internal/repository"
    "github.com/jcbaxter/askbot-devel/pkg/logger"
)

// MessageService 消息/会话编排：发送、回复、归档、查询。
// 每个操作一个 gorm 事务；消息行与发送者的 seen memo 必须同事务落库，
// 回复的整个序列（建行、双向扇出、root 元数据、批量解档）要么全部提交
// 要么全部回滚。
type MessageService struct {
    db       *gorm.DB
    renderer Renderer
}

func NewMessageService(db *gorm.DB, renderer Renderer) *MessageService {
    if renderer == nil {
        renderer = PlainRenderer{}
    }
    return &MessageService{db: db, renderer: renderer}
}

// CreateMessageParams 建消息入参；Headline 缺省时从正文截取
type CreateMessageParams struct {
    SenderID    string
    ParentID    *string
    RootID      *string
    Text        string
    Headline    string
    MessageType int8
    SendersInfo string
    ActiveUntil *time.Time
}

// CreateMessage 创建单条消息（含发送者 seen memo），root 解析规则：
// 显式 root 优先；否则沿 parent 继承（parent 已有 root 用之，否则
// parent 本身就是 root）；没有 parent 则本消息成为新会话根。
func (s *MessageService) CreateMessage(ctx context.Context, p CreateMessageParams) (*model.Message, error) {
    var out *model.Message
    err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        m, err := s.createMessageTx(ctx, tx, p)
        if err != nil {
            return err
        }
        out = m
        return nil
    })
    return out, err
}

func (s *MessageService) createMessageTx(ctx context.Context, tx *gorm.DB, p CreateMessageParams) (*model.Message, error) {
    if strings.TrimSpace(p.Text) == "" {
        return nil, ErrEmptyText
    }

    root := p.RootID
    if root == nil && p.ParentID != nil {
        parent, err := repository.NewMessageRepository(tx).Get(ctx, *p.ParentID)
        if err != nil {
            return nil, err
        }
        if parent.RootID != nil {
            root = parent.RootID
        } else {
            root = &parent.ID
        }
    }

    headline := p.Headline
    if headline == "" {
        headline = p.Text
    }
    headline = truncate(headline, model.MaxHeadlineLength)

    html, err := s.renderer.Render(p.Text)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrRendering, err)
    }

    now := time.Now()
    m := &model.Message{
        ID:          uuid.New().String(),
        MessageType: p.MessageType,
        SenderID:    p.SenderID,
        SendersInfo: p.SendersInfo,
        RootID:      root,
        ParentID:    p.ParentID,
        Headline:    headline,
        Text:        p.Text,
        HTML:        html,
        SentAt:      now,
        LastActiveAt: now,
        ActiveUntil: p.ActiveUntil,
    }
    if err := repository.NewMessageRepository(tx).Create(ctx, m); err != nil {
        return nil, err
    }
    // 发送者对自己的帖子天然已读；memo 建不上整个发送回滚，
    // 不允许出现没有 self-memo 的孤儿消息
    if _, err := repository.NewMemoRepository(tx).Create(ctx, p.SenderID, m.ID, model.MemoStatusSeen); err != nil {
        return nil, err
    }
    return m, nil
}

// CreateThread 新开会话：stored 消息 + 初始贡献者串 + 收件组扇出
func (s *MessageService) CreateThread(ctx context.Context, senderID string, recipientGroupIDs []string, text string) (*model.Message, error) {
    var out *model.Message
    err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        sender, err := repository.NewUserRepository(tx).Get(ctx, senderID)
        if err != nil {
            return err
        }
        m, err := s.createMessageTx(ctx, tx, CreateMessageParams{
            SenderID:    sender.ID,
            Text:        text,
            MessageType: model.MessageTypeStored,
            SendersInfo: sender.Username,
        })
        if err != nil {
            return err
        }
        if err := s.addRecipientsTx(ctx, tx, m, recipientGroupIDs); err != nil {
            return err
        }
        out = m
        return nil
    })
    if err != nil {
        return nil, err
    }
    logger.Info("thread created",
        zap.String("message_id", out.ID),
        zap.String("sender_id", senderID),
        zap.Int("recipients", len(recipientGroupIDs)))
    return out, nil
}

// CreateResponse 回复：
//  1. 建回复消息（root 沿 parent 解析）
//  2. 回复收件集 = 父消息收件集 ∪ 父消息作者的个人组
//  3. 父消息作者的个人组同时补挂到父消息上，保证原作者之后的
//     扇出都能收到（两处都挂是既有行为，勿"化简"）
//  4. 刷新 root 的 last_active_at 与贡献者串
//  5. 批量解档，让会话在所有人的收件箱里复活
//
// 任何一步失败整个序列回滚。
func (s *MessageService) CreateResponse(ctx context.Context, senderID, text, parentID string) (*model.Message, error) {
    var out *model.Message
    err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        users := repository.NewUserRepository(tx)
        msgs := repository.NewMessageRepository(tx)

        sender, err := users.Get(ctx, senderID)
        if err != nil {
            return err
        }
        parent, err := msgs.Get(ctx, parentID)
        if err != nil {
            return err
        }

        m, err := s.createMessageTx(ctx, tx, CreateMessageParams{
            SenderID:    sender.ID,
            ParentID:    &parent.ID,
            Text:        text,
            MessageType: model.MessageTypeStored,
        })
        if err != nil {
            return err
        }

        parentAuthorGroup, err := repository.NewGroupDirectory(tx).ResolvePersonalGroup(ctx, parent.SenderID)
        if err != nil {
            return err
        }
        recipients, err := msgs.RecipientGroupIDs(ctx, parent.ID)
        if err != nil {
            return err
        }
        recipients = append(recipients, parentAuthorGroup.ID)
        if err := s.addRecipientsTx(ctx, tx, m, recipients); err != nil {
            return err
        }
        if err := s.addRecipientsTx(ctx, tx, parent, []string{parentAuthorGroup.ID}); err != nil {
            return err
        }

        rootID := *m.RootID
        root, err := msgs.Get(ctx, rootID)
        if err != nil {
            return err
        }
        info := rollSendersInfo(root.SendersInfo, sender.Username)
        if err := msgs.UpdateRootMeta(ctx, rootID, time.Now(), info); err != nil {
            return err
        }
        if err := repository.NewMemoRepository(tx).Unarchive(ctx, rootID); err != nil {
            return err
        }
        out = m
        return nil
    })
    return out, err
}

// AddRecipients 把收件组挂到消息上并登记 sender index
func (s *MessageService) AddRecipients(ctx context.Context, messageID string, groupIDs []string) error {
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        m, err := repository.NewMessageRepository(tx).Get(ctx, messageID)
        if err != nil {
            return err
        }
        return s.addRecipientsTx(ctx, tx, m, groupIDs)
    })
}

func (s *MessageService) addRecipientsTx(ctx context.Context, tx *gorm.DB, m *model.Message, groupIDs []string) error {
    msgs := repository.NewMessageRepository(tx)
    senders := repository.NewSenderListRepository(tx)
    seen := make(map[string]struct{}, len(groupIDs))
    for _, gid := range groupIDs {
        if _, ok := seen[gid]; ok {
            continue
        }
        seen[gid] = struct{}{}
        if err := msgs.AddRecipient(ctx, m.ID, gid); err != nil {
            return err
        }
        if err := senders.RecordSend(ctx, gid, m.SenderID); err != nil {
            return err
        }
    }
    return nil
}

// GetThreads 收件箱（deleted=false）或已归档（deleted=true）会话视图；
// senderID 非空时只看该发送者的会话
func (s *MessageService) GetThreads(ctx context.Context, recipientID, senderID string, deleted bool) ([]*model.Message, error) {
    return repository.NewMessageRepository(s.db).GetThreads(ctx, recipientID, senderID, deleted)
}

// Archive 用户把会话挪进"已删除"视图
func (s *MessageService) Archive(ctx context.Context, userID, messageID string) error {
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if _, err := repository.NewMessageRepository(tx).Get(ctx, messageID); err != nil {
            return err
        }
        return repository.NewMemoRepository(tx).SetStatus(ctx, userID, messageID, model.MemoStatusArchived)
    })
}

// Visit 用户浏览会话：memo 置 seen，并刷新最后访问时间
func (s *MessageService) Visit(ctx context.Context, userID, messageID string) error {
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if _, err := repository.NewMessageRepository(tx).Get(ctx, messageID); err != nil {
            return err
        }
        if err := repository.NewMemoRepository(tx).SetStatus(ctx, userID, messageID, model.MemoStatusSeen); err != nil {
            return err
        }
        return repository.NewLastVisitRepository(tx).Touch(ctx, userID, messageID)
    })
}

// truncate 按字符数硬截断，不看词边界——设计内的有损变换，不是错误
func truncate(s string, n int) string {
    r := []rune(s)
    if len(r) <= n {
        return s
    }
    return string(r[:n])
}

// rollSendersInfo 维护 root 上"最近回复者在前"的逗号分隔名单：
// 先摘掉本次发送者再前插，拼好后硬截到 64 字符（名字可能被拦腰截断，
// 属接受的近似）
func rollSendersInfo(existing, name string) string {
    names := strings.Split(existing, ",")
    out := make([]string, 0, len(names)+1)
    out = append(out, name)
    for _, n := range names {
        if n != name {
            out = append(out, n)
        }
    }
    return truncate(strings.Join(out, ","), model.MaxSendersInfoLength)
}
