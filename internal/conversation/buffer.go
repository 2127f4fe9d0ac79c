package conversation

import (
	"strings"

	"assistant-kit/internal/model"
)

const (
	HumanPrefix = "Human"
	AIPrefix    = "AI"
)

// FormatBuffer renders turns as "Human: ..." / "AI: ..." lines.
func FormatBuffer(turns []model.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		prefix := HumanPrefix
		if t.Role == model.RoleAssistant {
			prefix = AIPrefix
		}
		lines = append(lines, prefix+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// Window keeps the last n turns. n <= 0 keeps everything.
func Window(turns []model.Turn, n int) []model.Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// Validate checks the session id and every turn role before a write.
func Validate(sessionID string, turns []model.Turn) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrEmptySessionID
	}
	for _, t := range turns {
		if !t.Role.Valid() {
			return ErrInvalidTurn
		}
	}
	return nil
}
