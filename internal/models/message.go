package models

// Role tags a message with its conversational origin.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one role-tagged entry in a conversation history. The full
// ordered history is replayed to the completion backend on every turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
