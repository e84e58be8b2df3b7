package domain

// ChatHistoryLimit 每次对话最多带上的历史消息条数
const ChatHistoryLimit = 10

// DefaultChatSystemPrompt 请求未指定系统提示词时使用
const DefaultChatSystemPrompt = "You are a professional sock design assistant."

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 设计助手对话请求
type ChatRequest struct {
	Message      string     `json:"message"`
	SystemPrompt string     `json:"system_prompt,omitempty"`
	History      []ChatTurn `json:"conversation_history,omitempty"`
}

// EditRequest 基于已有图片的编辑请求，MaskData 为空时整图编辑
type EditRequest struct {
	ImageURL    string `json:"image_url"`
	MaskData    string `json:"mask_data,omitempty"`
	Instruction string `json:"edit_instruction"`
}
