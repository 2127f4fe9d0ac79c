package router

import "assistant-kit/internal/model"

// IntentDefinition is one catalog entry. Exactly one entry of a catalog
// is the default.
type IntentDefinition struct {
	Intent      string `toml:"intent" json:"intent"`
	Description string `toml:"description" json:"description"`
	Prompt      string `toml:"prompt" json:"prompt"`
	Default     bool   `toml:"default" json:"default"`
}

// Decision is the intent picked for one utterance.
type Decision struct {
	Intent   string
	Template *Template
	Score    float64
	Fallback bool // no confident match, default intent used
}

// RouteInput is one user turn. When History is nil and the router has a
// memory, the history is read from it by SessionID.
type RouteInput struct {
	SessionID string
	Utterance string
	History   []model.Turn
}

// Response is the completion for a routed turn.
type Response struct {
	Text     string  `json:"text"`
	Intent   string  `json:"intent"`
	Score    float64 `json:"score"`
	Fallback bool    `json:"fallback"`
}
