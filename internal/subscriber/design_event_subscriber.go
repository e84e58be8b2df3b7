package subscriber

import (
	"context"
	"sync/atomic"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/eventbus"
	"k8s.io/klog/v2"
)

// DesignStats 流水线计数快照
type DesignStats struct {
	ProposalsExpanded int64 `json:"proposals_expanded"`
	ExpandFailures    int64 `json:"expand_failures"`
	DesignsRendered   int64 `json:"designs_rendered"`
	DesignsFailed     int64 `json:"designs_failed"`
}

// DesignEventSubscriber 统计设计流水线事件
type DesignEventSubscriber struct {
	proposalsExpanded atomic.Int64
	expandFailures    atomic.Int64
	designsRendered   atomic.Int64
	designsFailed     atomic.Int64
}

func NewDesignEventSubscriber() *DesignEventSubscriber {
	return &DesignEventSubscriber{}
}

func (s *DesignEventSubscriber) Register(bus *eventbus.DesignEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.DesignEventProposalExpanded, s.handleProposalExpanded)
	bus.Subscribe(eventbus.DesignEventExpandFailed, s.handleExpandFailed)
	bus.Subscribe(eventbus.DesignEventRendered, s.handleRendered)
	bus.Subscribe(eventbus.DesignEventRenderFailed, s.handleRenderFailed)
}

func (s *DesignEventSubscriber) Snapshot() DesignStats {
	return DesignStats{
		ProposalsExpanded: s.proposalsExpanded.Load(),
		ExpandFailures:    s.expandFailures.Load(),
		DesignsRendered:   s.designsRendered.Load(),
		DesignsFailed:     s.designsFailed.Load(),
	}
}

func (s *DesignEventSubscriber) handleProposalExpanded(ctx context.Context, event eventbus.DesignEvent) error {
	s.proposalsExpanded.Add(1)
	klog.V(6).Infof("方案扩展事件: design_name=%s", event.DesignName)
	return nil
}

func (s *DesignEventSubscriber) handleExpandFailed(ctx context.Context, event eventbus.DesignEvent) error {
	s.expandFailures.Add(1)
	klog.V(6).Infof("方案扩展失败事件: error=%s", event.Error)
	return nil
}

func (s *DesignEventSubscriber) handleRendered(ctx context.Context, event eventbus.DesignEvent) error {
	s.designsRendered.Add(1)
	klog.V(6).Infof("图片生成事件: design_name=%s, url=%s", event.DesignName, event.URL)
	return nil
}

// handleRenderFailed 占位图也计入失败
func (s *DesignEventSubscriber) handleRenderFailed(ctx context.Context, event eventbus.DesignEvent) error {
	s.designsFailed.Add(1)
	klog.V(6).Infof("图片生成失败事件: design_name=%s, error=%s", event.DesignName, event.Error)
	return nil
}
