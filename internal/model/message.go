package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Reply modes, mirroring how the assistant answered.
const (
	ModeStatus       = "status"
	ModeDocSearch    = "doc_search"
	ModeChatFallback = "chat_fallback"
	ModeChat         = "chat"
)

type Message struct {
	ID string `json:"id"`
	// Seq is the database-assigned insertion serial. Two messages of one
	// chat turn share a ctime, so history ordering relies on seq.
	Seq       int64  `json:"-"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Mode      string `json:"mode,omitempty"`
	Content   string `json:"content"`
	Ctime     int64  `json:"ctime"`
}
