package service

import "errors"

var (
    // ErrEmptyText 创建消息时正文缺失或为空
    ErrEmptyText = errors.New("message text is empty")
    // ErrRendering 正文渲染失败（原因包在错误串里，不重试不吞掉）
    ErrRendering = errors.New("message rendering failed")
)
