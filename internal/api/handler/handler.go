package handler

import (
    "errors"

    "github.com/gin-gonic/gin"
    "github.com/go-playground/validator/v10"

    "github.com/jcbaxter/askbot-devel/internal/repository"
    "github.com/jcbaxter/askbot-devel/internal/service"
    "github.com/jcbaxter/askbot-devel/pkg/response"
)

type Handler struct {
    messages *service.MessageService
    senders  *service.SenderService
    users    *service.UserService
}

func New(messages *service.MessageService, senders *service.SenderService, users *service.UserService) *Handler {
    return &Handler{messages: messages, senders: senders, users: users}
}

// bindError 把 binding 校验错误整理成可读提示
func bindError(c *gin.Context, err error) {
    var ve validator.ValidationErrors
    if errors.As(err, &ve) {
        response.BadRequest(c, ve.Error())
        return
    }
    response.BadRequest(c, err.Error())
}

// renderError 业务错误到 HTTP 状态的统一映射
func renderError(c *gin.Context, err error) {
    switch {
    case errors.Is(err, repository.ErrNotFound):
        response.NotFound(c, err.Error())
    case errors.Is(err, service.ErrEmptyText),
        errors.Is(err, repository.ErrDuplicate):
        response.BadRequest(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}
