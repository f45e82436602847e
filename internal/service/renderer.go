package service

// Renderer 把消息源文本渲染成标记文本（如 markdown → html）。
// 外部协作者，纯函数；失败向上传播。
type Renderer interface {
    Render(text string) (string, error)
}

// PlainRenderer 透传实现，部署时由外部注入真正的渲染器
type PlainRenderer struct{}

func (PlainRenderer) Render(text string) (string, error) { return text, nil }
