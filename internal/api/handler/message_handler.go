package handler

import (
    "time"

    "github.com/gin-gonic/gin"

    "github.com/jcbaxter/askbot-devel/internal/model"
    "github.com/jcbaxter/askbot-devel/pkg/response"
)

type createUserRequest struct {
    Username string `json:"username" binding:"required,max=64"`
}

type createThreadRequest struct {
    SenderID          string   `json:"sender_id" binding:"required"`
    RecipientGroupIDs []string `json:"recipient_group_ids" binding:"required,min=1"`
    Text              string   `json:"text" binding:"required"`
}

type createResponseRequest struct {
    SenderID string `json:"sender_id" binding:"required"`
    ParentID string `json:"parent_id" binding:"required"`
    Text     string `json:"text" binding:"required"`
}

type messageResponse struct {
    ID           string    `json:"id"`
    RootID       *string   `json:"root_id,omitempty"`
    ParentID     *string   `json:"parent_id,omitempty"`
    SenderID     string    `json:"sender_id"`
    SendersInfo  string    `json:"senders_info"`
    Headline     string    `json:"headline"`
    Text         string    `json:"text"`
    HTML         string    `json:"html"`
    SentAt       time.Time `json:"sent_at"`
    LastActiveAt time.Time `json:"last_active_at"`
}

func toMessageResponse(m *model.Message) messageResponse {
    return messageResponse{
        ID:           m.ID,
        RootID:       m.RootID,
        ParentID:     m.ParentID,
        SenderID:     m.SenderID,
        SendersInfo:  m.SendersInfo,
        Headline:     m.Headline,
        Text:         m.Text,
        HTML:         m.HTML,
        SentAt:       m.SentAt,
        LastActiveAt: m.LastActiveAt,
    }
}

// CreateUser 建用户并同时建好个人组
// @Summary 创建用户（引导用）
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body createUserRequest true "用户信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
    var req createUserRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        bindError(c, err)
        return
    }
    u, err := h.users.Register(c.Request.Context(), req.Username)
    if err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, gin.H{"id": u.ID, "username": u.Username})
}

// CreateThread 新开会话
// @Summary 发送消息开新会话
// @Tags 消息
// @Accept json
// @Produce json
// @Param request body createThreadRequest true "会话信息"
// @Success 200 {object} response.Response{data=messageResponse}
// @Failure 400 {object} response.Response
// @Router /api/v1/threads [post]
func (h *Handler) CreateThread(c *gin.Context) {
    var req createThreadRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        bindError(c, err)
        return
    }
    m, err := h.messages.CreateThread(c.Request.Context(), req.SenderID, req.RecipientGroupIDs, req.Text)
    if err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, toMessageResponse(m))
}

// CreateResponse 回复某条消息
// @Summary 回复消息
// @Tags 消息
// @Accept json
// @Produce json
// @Param request body createResponseRequest true "回复信息"
// @Success 200 {object} response.Response{data=messageResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/threads/responses [post]
func (h *Handler) CreateResponse(c *gin.Context) {
    var req createResponseRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        bindError(c, err)
        return
    }
    m, err := h.messages.CreateResponse(c.Request.Context(), req.SenderID, req.Text, req.ParentID)
    if err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, toMessageResponse(m))
}

// ListThreads 收件箱/已归档会话视图
// @Summary 查询用户可见的会话
// @Tags 消息
// @Param user_id path string true "用户ID"
// @Param deleted query bool false "查已归档视图" default(false)
// @Param sender_id query string false "只看该发送者"
// @Success 200 {object} response.Response{data=[]messageResponse}
// @Router /api/v1/users/{user_id}/threads [get]
func (h *Handler) ListThreads(c *gin.Context) {
    userID := c.Param("user_id")
    deleted := c.DefaultQuery("deleted", "false") == "true"
    senderID := c.Query("sender_id")
    threads, err := h.messages.GetThreads(c.Request.Context(), userID, senderID, deleted)
    if err != nil {
        renderError(c, err)
        return
    }
    out := make([]messageResponse, 0, len(threads))
    for _, m := range threads {
        out = append(out, toMessageResponse(m))
    }
    response.Success(c, out)
}

// ListSenders 谁能给我发消息
// @Summary 查询可向该用户发信的人
// @Tags 消息
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{user_id}/senders [get]
func (h *Handler) ListSenders(c *gin.Context) {
    userID := c.Param("user_id")
    senders, err := h.senders.SendersVisibleTo(c.Request.Context(), userID)
    if err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, senders)
}

// ArchiveThread 把会话挪进"已删除"视图
// @Summary 归档会话
// @Tags 消息
// @Param user_id path string true "用户ID"
// @Param message_id path string true "会话根消息ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/threads/{message_id}/archive [post]
func (h *Handler) ArchiveThread(c *gin.Context) {
    if err := h.messages.Archive(c.Request.Context(), c.Param("user_id"), c.Param("message_id")); err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, nil)
}

// VisitThread 浏览会话：memo 置 seen 并刷新最后访问时间
// @Summary 访问会话
// @Tags 消息
// @Param user_id path string true "用户ID"
// @Param message_id path string true "会话根消息ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/threads/{message_id}/visit [post]
func (h *Handler) VisitThread(c *gin.Context) {
    if err := h.messages.Visit(c.Request.Context(), c.Param("user_id"), c.Param("message_id")); err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, nil)
}
