package extraction

import (
	"context"
	"sync"

	"assistant-kit/internal/conversation"
	"assistant-kit/internal/metrics"
	"assistant-kit/internal/model"
	pkgLog "assistant-kit/pkg/log"
)

// Memory owns the partial record of one session and its conversation log.
// Turns are processed one at a time.
type Memory struct {
	mu        sync.Mutex
	schema    *Schema
	record    *Record
	extractor Extractor
	log       conversation.Log
	sessionID string
	l         pkgLog.Logger
}

// NewMemory starts an all-unset record of schema for sessionID.
func NewMemory(l pkgLog.Logger, schema *Schema, extractor Extractor, log conversation.Log, sessionID string) *Memory {
	return &Memory{
		schema:    schema,
		record:    NewRecord(schema),
		extractor: extractor,
		log:       log,
		sessionID: sessionID,
		l:         l,
	}
}

// RecordTurn extracts from userInput, merges the first candidate and then
// appends both messages to the log. On an extraction or log failure the
// record keeps its previous state.
func (m *Memory) RecordTurn(ctx context.Context, userInput, assistantOutput string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates, err := m.extractor.Extract(ctx, userInput, m.schema)
	if err != nil {
		metrics.ObserveExtraction(m.schema.Name, metrics.ResultError)
		m.l.Errorf(ctx, "%s.RecordTurn: session=%s: %v", LogPrefix, m.sessionID, err)
		return &ExtractionError{Schema: m.schema.Name, Err: err}
	}

	next := m.record
	result := metrics.ResultEmpty
	if len(candidates) > 0 && candidates[0] != nil {
		next = m.record.Clone()
		if err := next.Merge(candidates[0]); err != nil {
			metrics.ObserveExtraction(m.schema.Name, metrics.ResultError)
			return &ExtractionError{Schema: m.schema.Name, Err: err}
		}
		result = metrics.ResultMerged
	}

	if err := m.log.Append(ctx, m.sessionID, model.HumanTurn(userInput), model.AssistantTurn(assistantOutput)); err != nil {
		m.l.Errorf(ctx, "%s.RecordTurn: session=%s: append: %v", LogPrefix, m.sessionID, err)
		return err
	}

	m.record = next
	metrics.ObserveExtraction(m.schema.Name, result)
	m.l.Debugf(ctx, "%s.RecordTurn: session=%s result=%s candidates=%d", LogPrefix, m.sessionID, result, len(candidates))
	return nil
}

// Snapshot returns the record as nested maps without unset fields.
func (m *Memory) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record.ToMap()
}

// Record returns a copy of the current record.
func (m *Memory) Record() *Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record.Clone()
}

// Missing lists the leaf paths still to be collected.
func (m *Memory) Missing() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record.Missing()
}

// History reads the session's conversation log.
func (m *Memory) History(ctx context.Context) ([]model.Turn, error) {
	return m.log.ReadAll(ctx, m.sessionID)
}

// Reset drops the record and the conversation log.
func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.log.Clear(ctx, m.sessionID); err != nil {
		return err
	}
	m.record = NewRecord(m.schema)
	return nil
}

// Schema returns the schema being filled.
func (m *Memory) Schema() *Schema {
	return m.schema
}
