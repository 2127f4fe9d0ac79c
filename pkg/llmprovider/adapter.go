package llmprovider

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	goopenai "github.com/sashabaranov/go-openai"

	"assistant-kit/pkg/gemini"
	"assistant-kit/pkg/openai"
)

const providerGemini = "gemini"

// GeminiAdapter serves a pkg/gemini client as a Provider.
type GeminiAdapter struct {
	client gemini.IGemini
}

func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	var system *gemini.Content
	if req.SystemInstruction != nil {
		c := toGeminiContent(*req.SystemInstruction)
		system = &c
	}
	contents := make([]gemini.Content, len(req.Messages))
	for i, m := range req.Messages {
		contents[i] = toGeminiContent(m)
	}
	tools := make([]gemini.Tool, len(req.Tools))
	for i, t := range req.Tools {
		tools[i] = gemini.Tool{Name: t.Name, Description: t.Description, Parameters: t.Parameters}
	}

	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: system,
		Messages:          contents,
		Tools:             tools,
		ForceFunction:     req.ToolChoice,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	out := &Response{
		Content:      Message{Role: RoleAssistant},
		ProviderName: providerGemini,
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	for _, p := range resp.Content.Parts {
		part := Part{Text: p.Text}
		if p.FunctionCall != nil {
			part.FunctionCall = &FunctionCall{Name: p.FunctionCall.Name, Args: p.FunctionCall.Args}
		}
		out.Content.Parts = append(out.Content.Parts, part)
	}
	return out, nil
}

func (a *GeminiAdapter) Name() string  { return providerGemini }
func (a *GeminiAdapter) Model() string { return a.client.Model() }

// toGeminiContent maps the assistant role to Gemini's "model".
func toGeminiContent(m Message) gemini.Content {
	role := m.Role
	if role == RoleAssistant {
		role = "model"
	}
	parts := make([]gemini.Part, len(m.Parts))
	for i, p := range m.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &gemini.FunctionCall{Name: p.FunctionCall.Name, Args: p.FunctionCall.Args}
		}
	}
	return gemini.Content{Role: role, Parts: parts}
}

// OpenAIAdapter serves any OpenAI-compatible endpoint (openai, deepseek,
// qwen) as a Provider reported under name.
type OpenAIAdapter struct {
	name   string
	client openai.IOpenAI
}

func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: joinText(req.SystemInstruction.Parts),
		})
	}
	for _, m := range req.Messages {
		msg, err := toOpenAIMessage(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.name, err)
		}
		messages = append(messages, msg)
	}

	chatReq := goopenai.ChatCompletionRequest{
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	for _, t := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	if req.ToolChoice != "" {
		chatReq.ToolChoice = goopenai.ToolChoice{
			Type:     goopenai.ToolTypeFunction,
			Function: goopenai.ToolFunction{Name: req.ToolChoice},
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	return fromOpenAIResponse(a.name, resp)
}

func (a *OpenAIAdapter) Name() string  { return a.name }
func (a *OpenAIAdapter) Model() string { return a.client.Model() }

func joinText(parts []Part) string {
	var text string
	for _, p := range parts {
		text += p.Text
	}
	return text
}

func toOpenAIMessage(m Message) (goopenai.ChatCompletionMessage, error) {
	out := goopenai.ChatCompletionMessage{Role: m.Role, Content: joinText(m.Parts)}
	for _, p := range m.Parts {
		if p.FunctionCall == nil {
			continue
		}
		args, err := json.Marshal(p.FunctionCall.Args)
		if err != nil {
			return out, fmt.Errorf("marshal %s arguments: %w", p.FunctionCall.Name, err)
		}
		out.ToolCalls = append(out.ToolCalls, goopenai.ToolCall{
			ID:   "call_" + p.FunctionCall.Name,
			Type: goopenai.ToolTypeFunction,
			Function: goopenai.FunctionCall{
				Name:      p.FunctionCall.Name,
				Arguments: string(args),
			},
		})
	}
	return out, nil
}

// fromOpenAIResponse keeps the first choice. Tool call arguments that are not
// a JSON object are an error; the caller's retry may get a better answer.
func fromOpenAIResponse(name string, resp goopenai.ChatCompletionResponse) (*Response, error) {
	out := &Response{
		Content:      Message{Role: RoleAssistant},
		ProviderName: name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) == 0 {
		return out, nil
	}

	msg := resp.Choices[0].Message
	if msg.Content != "" {
		out.Content.Parts = append(out.Content.Parts, Part{Text: msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		var args map[string]any
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("%s: %s arguments: %w", name, tc.Function.Name, err)
		}
		out.Content.Parts = append(out.Content.Parts, Part{
			FunctionCall: &FunctionCall{Name: tc.Function.Name, Args: args},
		})
	}
	return out, nil
}
