package bench

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/model"
	"assistant-kit/internal/router"
	"assistant-kit/pkg/embedding"
	"assistant-kit/pkg/llmprovider"
)

// Memory kinds accepted by NewMemory.
const (
	MemoryBuffer    = "buffer"
	MemorySummary   = "summary"
	MemoryRetriever = "retriever"

	DefaultSummaryTokens = 400
	DefaultRetrieverTopK = 5

	varRetrieverResults = "retriever_results"
	varSummary          = "summary"
	varNewLines         = "new_lines"
)

// SummaryPrompt folds pruned turns into the running summary.
const SummaryPrompt = `Progressively summarize the lines of conversation provided, adding onto the previous summary and returning a new summary.

Current summary:
{summary}

New lines of conversation:
{new_lines}

New summary:`

// Memory turns the stored log of a session into prompt variables. It may keep
// derived state per session, seeded before the first turn and updated after
// each one.
type Memory interface {
	Name() string
	Prompt() string
	Seed(ctx context.Context, sessionID string, history []model.Turn) error
	Variables(ctx context.Context, sessionID, input string, history []model.Turn) (map[string]string, error)
	Saved(ctx context.Context, sessionID string, human, ai model.Turn) error
	Forget(sessionID string)
}

// MemoryConfig selects and tunes a Memory.
type MemoryConfig struct {
	Kind          string
	HistoryWindow int
	SummaryTokens int
	TopK          int
}

// NewMemory builds the memory named by cfg.Kind. The completer backs the
// summary memory and the embedder backs the retriever memory.
func NewMemory(cfg MemoryConfig, completer llmprovider.Completer, embedder embedding.Embedder) (Memory, error) {
	switch cfg.Kind {
	case "", MemoryBuffer:
		return NewBufferMemory(cfg.HistoryWindow), nil
	case MemorySummary:
		return NewSummaryMemory(completer, cfg.SummaryTokens)
	case MemoryRetriever:
		if embedder == nil {
			return nil, fmt.Errorf("%s.NewMemory: retriever memory needs an embedder", LogPrefix)
		}
		summary, err := NewSummaryMemory(completer, cfg.SummaryTokens)
		if err != nil {
			return nil, err
		}
		return NewRetrieverMemory(embedder, summary, cfg.TopK), nil
	default:
		return nil, fmt.Errorf("%s.NewMemory: unknown memory %q", LogPrefix, cfg.Kind)
	}
}

// BufferMemory renders the last window turns verbatim.
type BufferMemory struct {
	window int
}

func NewBufferMemory(window int) *BufferMemory {
	return &BufferMemory{window: window}
}

func (m *BufferMemory) Name() string   { return MemoryBuffer }
func (m *BufferMemory) Prompt() string { return PromptTemplate }

func (m *BufferMemory) Seed(context.Context, string, []model.Turn) error { return nil }

func (m *BufferMemory) Variables(_ context.Context, _, _ string, history []model.Turn) (map[string]string, error) {
	return map[string]string{
		router.VarChatHistory: conversation.FormatBuffer(conversation.Window(history, m.window)),
	}, nil
}

func (m *BufferMemory) Saved(context.Context, string, model.Turn, model.Turn) error { return nil }
func (m *BufferMemory) Forget(string)                                               {}

// SummaryMemory keeps recent turns verbatim while they fit in maxTokens and
// folds older ones into a running summary written by the completer.
type SummaryMemory struct {
	completer llmprovider.Completer
	template  *router.Template
	maxTokens int

	mu     sync.Mutex
	states map[string]*summaryState
}

type summaryState struct {
	summary string
	// offset is the number of log turns already folded into summary.
	offset int
}

func NewSummaryMemory(completer llmprovider.Completer, maxTokens int) (*SummaryMemory, error) {
	if completer == nil {
		return nil, fmt.Errorf("%s.NewSummaryMemory: completer must not be nil", LogPrefix)
	}
	tmpl, err := router.ParseTemplate(SummaryPrompt)
	if err != nil {
		return nil, err
	}
	if maxTokens <= 0 {
		maxTokens = DefaultSummaryTokens
	}
	return &SummaryMemory{
		completer: completer,
		template:  tmpl,
		maxTokens: maxTokens,
		states:    make(map[string]*summaryState),
	}, nil
}

func (m *SummaryMemory) Name() string   { return MemorySummary }
func (m *SummaryMemory) Prompt() string { return PromptTemplate }

func (m *SummaryMemory) Seed(context.Context, string, []model.Turn) error { return nil }

// Variables prunes the oldest turns until the buffer fits and summarizes what
// was pruned. The summary is rendered as a leading "System:" line.
func (m *SummaryMemory) Variables(ctx context.Context, sessionID, _ string, history []model.Turn) (map[string]string, error) {
	st := m.state(sessionID)

	offset := min(st.offset, len(history))
	buffer := history[offset:]
	cut := 0
	for cut < len(buffer) && countTokens(buffer[cut:]) > m.maxTokens {
		cut++
	}
	if cut > 0 {
		summary, err := m.completer.Complete(ctx, m.template.Render(map[string]string{
			varSummary:  st.summary,
			varNewLines: conversation.FormatBuffer(buffer[:cut]),
		}))
		if err != nil {
			return nil, fmt.Errorf("%s.SummaryMemory: summarize: %w", LogPrefix, err)
		}
		st.summary = strings.TrimSpace(summary)
		st.offset = offset + cut
		buffer = buffer[cut:]
	}

	var sb strings.Builder
	if st.summary != "" {
		sb.WriteString("System: ")
		sb.WriteString(st.summary)
		if len(buffer) > 0 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(conversation.FormatBuffer(buffer))
	return map[string]string{router.VarChatHistory: sb.String()}, nil
}

func (m *SummaryMemory) Saved(context.Context, string, model.Turn, model.Turn) error { return nil }

func (m *SummaryMemory) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.states, sessionID)
	m.mu.Unlock()
}

func (m *SummaryMemory) state(sessionID string) *summaryState {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[sessionID]
	if !ok {
		st = &summaryState{}
		m.states[sessionID] = st
	}
	return st
}

// countTokens approximates tokens by whitespace-separated words.
func countTokens(turns []model.Turn) int {
	n := 0
	for _, t := range turns {
		n += len(strings.Fields(t.Content)) + 1
	}
	return n
}

// RetrieverMemory embeds every turn of a session and fills
// {retriever_results} with the topK most similar to the current input. The
// chat history itself comes from the wrapped memory.
type RetrieverMemory struct {
	embedder embedding.Embedder
	chat     Memory
	topK     int

	mu   sync.Mutex
	docs map[string][]retrievedDoc
}

type retrievedDoc struct {
	text   string
	vector []float32
}

func NewRetrieverMemory(embedder embedding.Embedder, chat Memory, topK int) *RetrieverMemory {
	if topK <= 0 {
		topK = DefaultRetrieverTopK
	}
	return &RetrieverMemory{
		embedder: embedder,
		chat:     chat,
		topK:     topK,
		docs:     make(map[string][]retrievedDoc),
	}
}

func (m *RetrieverMemory) Name() string   { return MemoryRetriever }
func (m *RetrieverMemory) Prompt() string { return RetrieverPromptTemplate }

// Seed indexes each history turn as "<role>: <content>".
func (m *RetrieverMemory) Seed(ctx context.Context, sessionID string, history []model.Turn) error {
	if len(history) > 0 {
		texts := make([]string, len(history))
		for i, t := range history {
			texts[i] = string(t.Role) + ": " + t.Content
		}
		if err := m.add(ctx, sessionID, texts...); err != nil {
			return err
		}
	}
	return m.chat.Seed(ctx, sessionID, history)
}

func (m *RetrieverMemory) Variables(ctx context.Context, sessionID, input string, history []model.Turn) (map[string]string, error) {
	vars, err := m.chat.Variables(ctx, sessionID, input, history)
	if err != nil {
		return nil, err
	}
	results, err := m.search(ctx, sessionID, input)
	if err != nil {
		return nil, err
	}
	vars[varRetrieverResults] = strings.Join(results, "\n")
	return vars, nil
}

// Saved indexes the finished exchange as one document.
func (m *RetrieverMemory) Saved(ctx context.Context, sessionID string, human, ai model.Turn) error {
	if err := m.add(ctx, sessionID, "input: "+human.Content+"\ntext: "+ai.Content); err != nil {
		return err
	}
	return m.chat.Saved(ctx, sessionID, human, ai)
}

func (m *RetrieverMemory) Forget(sessionID string) {
	m.mu.Lock()
	delete(m.docs, sessionID)
	m.mu.Unlock()
	m.chat.Forget(sessionID)
}

func (m *RetrieverMemory) add(ctx context.Context, sessionID string, texts ...string) error {
	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("%s.RetrieverMemory: embed: %w", LogPrefix, err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("%s.RetrieverMemory: embed: got %d vectors for %d texts", LogPrefix, len(vectors), len(texts))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, text := range texts {
		m.docs[sessionID] = append(m.docs[sessionID], retrievedDoc{text: text, vector: vectors[i]})
	}
	return nil
}

func (m *RetrieverMemory) search(ctx context.Context, sessionID, input string) ([]string, error) {
	m.mu.Lock()
	docs := slices.Clone(m.docs[sessionID])
	m.mu.Unlock()
	if len(docs) == 0 {
		return nil, nil
	}

	vectors, err := m.embedder.Embed(ctx, []string{input})
	if err != nil {
		return nil, fmt.Errorf("%s.RetrieverMemory: embed query: %w", LogPrefix, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%s.RetrieverMemory: embed query: no vector", LogPrefix)
	}

	type scored struct {
		text  string
		score float64
	}
	hits := make([]scored, 0, len(docs))
	for _, d := range docs {
		score, err := embedding.Cosine(vectors[0], d.vector)
		if err != nil {
			return nil, fmt.Errorf("%s.RetrieverMemory: %w", LogPrefix, err)
		}
		hits = append(hits, scored{text: d.text, score: score})
	}
	slices.SortStableFunc(hits, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	out := make([]string, 0, m.topK)
	for _, h := range hits[:min(m.topK, len(hits))] {
		out = append(out, h.text)
	}
	return out, nil
}
