package domain

// SenderAdmin is the role tag used by support staff when they write into a
// customer conversation. Any other sender value is a customer identifier.
const SenderAdmin = "admin"

// Message is a chat message as persisted by the chat client. The fan-out core
// only reads it; it is never mutated or deleted here.
type Message struct {
	Sender         string `json:"sender"`
	Text           string `json:"text"`
	ConversationID string `json:"-"`
}

// MessageCreated is the trigger event emitted after a message is durably
// stored. UserID identifies the customer who owns the conversation the
// message belongs to.
type MessageCreated struct {
	UserID    string
	MessageID string
	Message   Message
}
