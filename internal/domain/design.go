package domain

// VariationCount 每个创意扩展出的设计方案数量
const VariationCount = 4

const (
	DefaultDesignName    = "AI Design Proposal" // 解析不到名称时使用
	UntitledDesignName   = "Untitled Design"    // 出图成功但方案没有名称
	FailedDesignName     = "Generation Failed"  // 出图失败且方案没有名称
	CustomEditDesignName = "Custom Edit"        // 用户手动修改提示词后重新出图
	EditedDesignName     = "Edited Design"      // 在已有图片上按指令编辑
)

// PlaceholderImageURL 出图失败时返回的占位图
const PlaceholderImageURL = "https://placehold.co/1024x1024/f87171/ffffff?text=Generation+Failed"

// DefaultFailureMessage 上游错误没有描述时使用，保证失败结果 Error 非空
const DefaultFailureMessage = "image generation failed"

// DefaultNegativePrompt 每个提示词都要追加的负面提示
const DefaultNegativePrompt = "low-res, blurry, uneven stitches, extra toes, detached heel, distortion, watermark, logo, text, noisy background, unsymmetrical design, gradient, copyright symbol"

// DesignIdea 用户输入的袜子创意，只有 Idea 必填
type DesignIdea struct {
	Idea         string `json:"idea"`
	SockLength   string `json:"sock_length,omitempty"`
	ColorPalette string `json:"color_palette,omitempty"`
	AccentColors string `json:"accent_colors,omitempty"`
}

type StructuredProposal struct {
	DesignName string `json:"design_name"`
	Prompt     string `json:"prompt"`
}

type GeneratedDesign struct {
	URL        string `json:"url"`
	Prompt     string `json:"prompt"`
	DesignName string `json:"design_name"`
	Error      string `json:"error,omitempty"`
}

// Failed 是否为占位结果
func (d GeneratedDesign) Failed() bool {
	return d.Error != ""
}

// FailureMessage 失败结果的错误描述，不会返回空字符串
func FailureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return DefaultFailureMessage
	}
	return err.Error()
}
