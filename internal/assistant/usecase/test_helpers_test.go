package usecase

import (
	"context"
	"sync"
	"time"

	"assistant-kit/internal/conversation"
	convMemory "assistant-kit/internal/conversation/repository/memory"
	"assistant-kit/internal/extraction"
	"assistant-kit/internal/model"
	"assistant-kit/internal/order"
	"assistant-kit/internal/router"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// fakeRouter echoes the utterance and writes the turn to its log, like a
// router built WithMemory.
type fakeRouter struct {
	log       conversation.Log
	err       error
	appendErr error
	calls     []router.RouteInput
}

func (f *fakeRouter) Route(ctx context.Context, in router.RouteInput) (router.Response, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return router.Response{}, f.err
	}
	reply := "echo: " + in.Utterance
	if f.appendErr != nil {
		return router.Response{Text: reply, Intent: "purchase a widget"}, f.appendErr
	}
	if err := f.log.Append(ctx, in.SessionID, model.HumanTurn(in.Utterance), model.AssistantTurn(reply)); err != nil {
		return router.Response{}, err
	}
	return router.Response{Text: reply, Intent: "purchase a widget", Fallback: true}, nil
}

type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

// keywordExtractor pulls a few order fields out of fixed phrases.
func keywordExtractor(fail error) extraction.Extractor {
	return extraction.ExtractorFunc(func(_ context.Context, text string, schema *extraction.Schema) ([]*extraction.Record, error) {
		if fail != nil {
			return nil, fail
		}
		raw := map[string]any{}
		switch text {
		case "I'd prefer them to be black.":
			raw["item"] = map[string]any{"color": "black"}
		case "Yes. I'm a size 9":
			raw["item"] = map[string]any{"size": "9", "color": ""}
		case "Jane Austin":
			raw["person"] = map[string]any{"first_name": "Jane", "last_name": "Austin"}
		default:
			return nil, nil
		}
		rec, _ := extraction.DecodeCandidate(schema, raw)
		return []*extraction.Record{rec}, nil
	})
}

type fixture struct {
	uc        *implUseCase
	log       conversation.Log
	router    *fakeRouter
	completer *fakeCompleter
}

func newFixture(cfg Config, extractErr error) fixture {
	log := convMemory.New(64, time.Hour)
	rt := &fakeRouter{log: log}
	comp := &fakeCompleter{reply: "What size?"}
	uc, err := New(&mockLogger{}, rt, comp, keywordExtractor(extractErr), log, order.Order, order.SalesTemplate, cfg)
	if err != nil {
		panic(err)
	}
	return fixture{uc: uc, log: log, router: rt, completer: comp}
}
