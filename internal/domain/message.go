package domain

import "fmt"

// Role tags a prompt message as persona context or task instruction.
type Role string

// Recognized message roles.
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged unit of a prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a persona message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns an instruction message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Messages is an ordered prompt sent in a single generation call.
type Messages []Message

// Validate enforces that the sequence is non-empty, uses only known roles,
// and ends with a user message.
func (m Messages) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: at least one message is required", ErrInvalidMessages)
	}
	for i, msg := range m {
		if msg.Role != RoleSystem && msg.Role != RoleUser {
			return fmt.Errorf("%w: message %d has unknown role %q", ErrInvalidMessages, i, msg.Role)
		}
	}
	if last := m[len(m)-1]; last.Role != RoleUser {
		return fmt.Errorf("%w: last message must have role %q", ErrInvalidMessages, RoleUser)
	}
	return nil
}

// Prompt returns the content of the final user message.
func (m Messages) Prompt() string {
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1].Content
}
