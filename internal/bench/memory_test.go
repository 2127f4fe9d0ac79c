package bench

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"assistant-kit/internal/conversation/repository/memory"
	"assistant-kit/internal/model"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/embedding"
	"assistant-kit/pkg/log"
)

// summaryCompleter answers summary requests with numbered summaries and
// everything else with a fixed reply.
type summaryCompleter struct {
	summaries []string
	chats     []string
	err       error
}

func (c *summaryCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if strings.HasPrefix(prompt, "Progressively summarize") {
		c.summaries = append(c.summaries, prompt)
		return "S" + string(rune('0'+len(c.summaries))), nil
	}
	c.chats = append(c.chats, prompt)
	return "Sure.", nil
}

type brokenEmbedder struct{}

func (brokenEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding quota")
}

func fourWords(i int) model.Turn {
	if i%2 == 0 {
		return model.HumanTurn("one two three four")
	}
	return model.AssistantTurn("five six seven eight")
}

func TestSummaryMemory_PrunesIntoSummary(t *testing.T) {
	ctx := context.Background()
	comp := &summaryCompleter{}
	m, err := NewSummaryMemory(comp, 10)
	if err != nil {
		t.Fatal(err)
	}

	history := []model.Turn{fourWords(0), fourWords(1), fourWords(2), fourWords(3)}
	vars, err := m.Variables(ctx, "s1", "q", history)
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(comp.summaries))
	}
	if !strings.Contains(comp.summaries[0], "New lines of conversation:\nHuman: one two three four\nAI: five six seven eight") {
		t.Errorf("pruned turns missing from summary prompt: %s", comp.summaries[0])
	}
	want := "System: S1\nHuman: one two three four\nAI: five six seven eight"
	if vars[router.VarChatHistory] != want {
		t.Errorf("chat_history = %q, want %q", vars[router.VarChatHistory], want)
	}

	// Within the limit nothing new is summarized.
	if _, err := m.Variables(ctx, "s1", "q", history); err != nil || len(comp.summaries) != 1 {
		t.Fatalf("unexpected summary call: %d %v", len(comp.summaries), err)
	}

	history = append(history, fourWords(4), fourWords(5))
	vars, err = m.Variables(ctx, "s1", "q", history)
	if err != nil {
		t.Fatal(err)
	}
	if len(comp.summaries) != 2 || !strings.Contains(comp.summaries[1], "Current summary:\nS1") {
		t.Fatalf("summary should build on the previous one: %v", comp.summaries)
	}
	if !strings.HasPrefix(vars[router.VarChatHistory], "System: S2\n") {
		t.Errorf("chat_history = %q", vars[router.VarChatHistory])
	}

	m.Forget("s1")
	vars, _ = m.Variables(ctx, "s1", "q", history[:2])
	if strings.Contains(vars[router.VarChatHistory], "System:") {
		t.Errorf("forgotten session kept its summary: %q", vars[router.VarChatHistory])
	}
}

func TestSummaryMemory_Errors(t *testing.T) {
	if _, err := NewSummaryMemory(nil, 10); err == nil {
		t.Error("expected error for nil completer")
	}
	m, _ := NewSummaryMemory(&summaryCompleter{err: errors.New("down")}, 1)
	if _, err := m.Variables(context.Background(), "s", "q", []model.Turn{fourWords(0)}); err == nil {
		t.Error("expected summarize error")
	}
}

func TestRetrieverMemory(t *testing.T) {
	ctx := context.Background()
	m := NewRetrieverMemory(embedding.NewHashEmbedder(0), NewBufferMemory(1), 1)

	err := m.Seed(ctx, "s1", []model.Turn{
		model.HumanTurn("Which volcanoes erupt lava near Reykjavik?"),
		model.AssistantTurn("Glaciers cover much of the highlands."),
	})
	if err != nil {
		t.Fatal(err)
	}

	vars, err := m.Variables(ctx, "s1", "tell me about lava and volcanoes", []model.Turn{model.AssistantTurn("latest")})
	if err != nil {
		t.Fatal(err)
	}
	if vars[varRetrieverResults] != "human: Which volcanoes erupt lava near Reykjavik?" {
		t.Errorf("retriever_results = %q", vars[varRetrieverResults])
	}
	if vars[router.VarChatHistory] != "AI: latest" {
		t.Errorf("chat_history should come from the wrapped memory, got %q", vars[router.VarChatHistory])
	}

	if err := m.Saved(ctx, "s1", model.HumanTurn("What currency do they use?"), model.AssistantTurn("The krona.")); err != nil {
		t.Fatal(err)
	}
	vars, _ = m.Variables(ctx, "s1", "currency krona", nil)
	if vars[varRetrieverResults] != "input: What currency do they use?\ntext: The krona." {
		t.Errorf("saved exchange not retrieved: %q", vars[varRetrieverResults])
	}

	vars, _ = m.Variables(ctx, "other", "lava", nil)
	if vars[varRetrieverResults] != "" {
		t.Errorf("sessions must not share documents: %q", vars[varRetrieverResults])
	}

	m.Forget("s1")
	vars, _ = m.Variables(ctx, "s1", "lava", nil)
	if vars[varRetrieverResults] != "" {
		t.Errorf("forgotten session still retrieves: %q", vars[varRetrieverResults])
	}

	broken := NewRetrieverMemory(brokenEmbedder{}, NewBufferMemory(0), 0)
	if err := broken.Seed(ctx, "s1", []model.Turn{model.HumanTurn("hi")}); err == nil {
		t.Error("expected embed error")
	}
}

func TestNewMemory(t *testing.T) {
	comp := &summaryCompleter{}
	tests := []struct {
		kind     string
		embedder embedding.Embedder
		want     string
		wantErr  bool
	}{
		{kind: "", want: MemoryBuffer},
		{kind: MemorySummary, want: MemorySummary},
		{kind: MemoryRetriever, embedder: embedding.NewHashEmbedder(0), want: MemoryRetriever},
		{kind: MemoryRetriever, wantErr: true},
		{kind: "zep", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			m, err := NewMemory(MemoryConfig{Kind: tt.kind}, comp, tt.embedder)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if m.Name() != tt.want {
				t.Errorf("Name = %s, want %s", m.Name(), tt.want)
			}
		})
	}
}

func TestRunner_RetrieverMemory(t *testing.T) {
	ctx := context.Background()
	comp := &summaryCompleter{}
	m, err := NewMemory(MemoryConfig{Kind: MemoryRetriever, SummaryTokens: 100}, comp, embedding.NewHashEmbedder(0))
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewRunner(log.NewNop(), comp, Iceland, WithMemory(m))
	if err != nil {
		t.Fatal(err)
	}
	res, err := r.Run(ctx, "memory", memory.New(8, time.Hour), 1)
	if err != nil {
		t.Fatal(err)
	}

	if res.Memory != MemoryRetriever || res.Stats.Count != len(Iceland.Messages) || len(comp.chats) != len(Iceland.Messages) {
		t.Fatalf("result = %+v, chats = %d", res, len(comp.chats))
	}
	if len(comp.summaries) == 0 {
		t.Error("seeded history exceeds the token limit and should be summarized")
	}
	first := comp.chats[0]
	if !strings.Contains(first, "Relevant pieces of previous conversation:\nhuman: ") && !strings.Contains(first, "Relevant pieces of previous conversation:\nai: ") {
		t.Errorf("retrieved history missing: %s", first)
	}
	if !strings.Contains(first, "The history of this conversation:\nSystem: S1") {
		t.Errorf("summary missing: %s", first)
	}
	if !strings.HasSuffix(first, "Current conversation:\nHuman: What's the local currency and how can I get it?\nAI:\n") {
		t.Errorf("unexpected prompt tail: %s", first)
	}
}
