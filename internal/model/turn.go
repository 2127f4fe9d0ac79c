package model

import "time"

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "ai"
)

// Turn is one message of a conversation log.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// HumanTurn builds a human turn stamped with the current time.
func HumanTurn(content string) Turn {
	return Turn{Role: RoleHuman, Content: content, CreatedAt: time.Now().UTC()}
}

// AssistantTurn builds an assistant turn stamped with the current time.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content, CreatedAt: time.Now().UTC()}
}

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	return r == RoleHuman || r == RoleAssistant
}
