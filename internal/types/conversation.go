package types

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message in a Q&A session. Turns are appended
// sequentially by the RAG orchestrator and cleared on reset.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
