// Package llmprovider puts Gemini and OpenAI-compatible chat models behind one
// Provider interface and chains them with retry and fallback.
package llmprovider

import (
	"context"
	"strings"
)

// Provider is one chat model endpoint.
type Provider interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Name() string  // "openai", "gemini", ...
	Model() string // model id sent to the endpoint
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is a provider-neutral generation request.
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Tools             []Tool
	// ToolChoice names a tool the model must call. Empty lets the model
	// answer in text or call any tool.
	ToolChoice  string
	Temperature float64
	MaxTokens   int
}

type Message struct {
	Role  string
	Parts []Part
}

// Part is a text segment or a function call, never both.
type Part struct {
	Text         string
	FunctionCall *FunctionCall
}

// Tool declares a function; Parameters is a JSON Schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type FunctionCall struct {
	Name string
	Args map[string]any
}

// Response is the first candidate of a generation.
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text concatenates the text parts of the response.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// FunctionCall returns the first function call of the response, if any.
func (r *Response) FunctionCall() *FunctionCall {
	if r == nil {
		return nil
	}
	for _, p := range r.Content.Parts {
		if p.FunctionCall != nil {
			return p.FunctionCall
		}
	}
	return nil
}

// UserText builds a single-part user message.
func UserText(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{{Text: text}}}
}
