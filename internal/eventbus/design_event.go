package eventbus

type DesignEventType string

const (
	DesignEventProposalExpanded DesignEventType = "ProposalExpanded" // 单个方案解析完成
	DesignEventExpandFailed     DesignEventType = "ExpandFailed"     // 文本生成失败，整个请求中止
	DesignEventRendered         DesignEventType = "Rendered"         // 图片生成成功
	DesignEventRenderFailed     DesignEventType = "RenderFailed"     // 图片生成失败，返回占位图
)

type DesignEvent struct {
	Type       DesignEventType
	DesignName string
	Prompt     string
	URL        string
	Error      string
}

type DesignEventHandler = Handler[DesignEvent]
type DesignEventBus = Bus[DesignEventType, DesignEvent]

func NewDesignEventBus() *DesignEventBus {
	return NewBus[DesignEventType, DesignEvent]()
}
