package llmprovider

import (
	"context"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"

	"assistant-kit/pkg/gemini"
)

type fakeGemini struct {
	got  *gemini.Request
	resp *gemini.Response
}

func (f *fakeGemini) GenerateContent(_ context.Context, req *gemini.Request) (*gemini.Response, error) {
	f.got = req
	return f.resp, nil
}
func (f *fakeGemini) Model() string { return "gemini-test" }

type fakeOpenAI struct {
	got  goopenai.ChatCompletionRequest
	resp goopenai.ChatCompletionResponse
}

func (f *fakeOpenAI) CreateChatCompletion(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	f.got = req
	return f.resp, nil
}
func (f *fakeOpenAI) Embed(context.Context, []string) ([][]float32, error) { return nil, nil }
func (f *fakeOpenAI) Model() string                                        { return "gpt-test" }

func extractionRequest() *Request {
	return &Request{
		SystemInstruction: &Message{Role: RoleSystem, Parts: []Part{{Text: "extract"}}},
		Messages: []Message{
			UserText("I'm Jane"),
			{Role: RoleAssistant, Parts: []Part{{Text: "Hi Jane"}}},
		},
		Tools:      []Tool{{Name: "information_extraction", Parameters: map[string]any{"type": "object"}}},
		ToolChoice: "information_extraction",
	}
}

func TestGeminiAdapter(t *testing.T) {
	client := &fakeGemini{resp: &gemini.Response{
		Content: gemini.Content{Role: "model", Parts: []gemini.Part{
			{FunctionCall: &gemini.FunctionCall{Name: "information_extraction", Args: map[string]any{"info": []any{}}}},
		}},
		Usage: &gemini.Usage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5},
	}}
	a := NewGeminiAdapter(client)

	resp, err := a.GenerateContent(context.Background(), extractionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.got.ForceFunction != "information_extraction" {
		t.Errorf("ForceFunction = %q", client.got.ForceFunction)
	}
	if client.got.SystemInstruction == nil || client.got.SystemInstruction.Parts[0].Text != "extract" {
		t.Errorf("system instruction not forwarded: %+v", client.got.SystemInstruction)
	}
	if client.got.Messages[1].Role != "model" {
		t.Errorf("assistant role should map to model, got %q", client.got.Messages[1].Role)
	}
	if fc := resp.FunctionCall(); fc == nil || fc.Name != "information_extraction" {
		t.Errorf("function call = %+v", fc)
	}
	if resp.ProviderName != "gemini" || resp.ModelName != "gemini-test" || resp.Usage.TotalTokens != 5 {
		t.Errorf("response meta = %+v", resp)
	}
}

func TestOpenAIAdapter(t *testing.T) {
	client := &fakeOpenAI{resp: goopenai.ChatCompletionResponse{
		Model: "gpt-test",
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{
			Role: goopenai.ChatMessageRoleAssistant,
			ToolCalls: []goopenai.ToolCall{{
				Type:     goopenai.ToolTypeFunction,
				Function: goopenai.FunctionCall{Name: "information_extraction", Arguments: `{"info":[{"person":{"first_name":"Jane"}}]}`},
			}},
		}}},
		Usage: goopenai.Usage{PromptTokens: 4, CompletionTokens: 6, TotalTokens: 10},
	}}
	a := NewOpenAIAdapter("deepseek", client)

	resp, err := a.GenerateContent(context.Background(), extractionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.got.Messages) != 3 || client.got.Messages[0].Role != goopenai.ChatMessageRoleSystem {
		t.Errorf("messages = %+v", client.got.Messages)
	}
	choice, ok := client.got.ToolChoice.(goopenai.ToolChoice)
	if !ok || choice.Function.Name != "information_extraction" {
		t.Errorf("tool choice = %+v", client.got.ToolChoice)
	}
	fc := resp.FunctionCall()
	if fc == nil || fc.Args["info"] == nil {
		t.Fatalf("function call = %+v", fc)
	}
	if a.Name() != "deepseek" || resp.ProviderName != "deepseek" || resp.Usage.TotalTokens != 10 {
		t.Errorf("response meta = %+v", resp)
	}
}

func TestOpenAIAdapter_BadToolArguments(t *testing.T) {
	client := &fakeOpenAI{resp: goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{
			ToolCalls: []goopenai.ToolCall{{Function: goopenai.FunctionCall{Name: "information_extraction", Arguments: `{"info": [`}}},
		}}},
	}}

	if _, err := NewOpenAIAdapter("openai", client).GenerateContent(context.Background(), extractionRequest()); err == nil {
		t.Fatal("expected error for truncated tool arguments")
	}
}

func TestOpenAIAdapter_TextOnly(t *testing.T) {
	client := &fakeOpenAI{resp: goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{Content: "Widgets are $499."}}},
	}}
	req := &Request{Messages: []Message{UserText("price?")}}

	resp, err := NewOpenAIAdapter("openai", client).GenerateContent(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Widgets are $499." || resp.FunctionCall() != nil {
		t.Errorf("response = %+v", resp)
	}
	if client.got.ToolChoice != nil || len(client.got.Tools) != 0 {
		t.Errorf("no tools expected, got %+v / %+v", client.got.Tools, client.got.ToolChoice)
	}
}
