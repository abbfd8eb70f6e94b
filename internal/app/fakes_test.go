package app

import (
	"context"
	"errors"

	"rag-assistant/internal/model"
)

type fakeEmbedder struct {
	embedCalls  int
	batchCalls  [][]string
	embedErr    error
	failOnBatch int // 1-based EmbedBatch call to fail on; 0 = never
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls = append(f.batchCalls, texts)
	if f.failOnBatch > 0 && len(f.batchCalls) == f.failOnBatch {
		return nil, errors.New("embedding provider unavailable")
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(len(texts[i]))}
	}
	return vectors, nil
}

type fakeIndex struct {
	upserts   [][]model.IndexedVector
	upsertErr error

	matches    []model.ScoredMatch
	queryErr   error
	queryCalls int
	lastTopK   int
}

func (f *fakeIndex) Upsert(ctx context.Context, vectors []model.IndexedVector) (int, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.upserts = append(f.upserts, vectors)
	return len(vectors), nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]model.ScoredMatch, error) {
	f.queryCalls++
	f.lastTopK = topK
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

type fakeLLM struct {
	system    string
	user      string
	maxTokens int
	answer    string
	err       error
	calls     int
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	f.maxTokens = maxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeRegistry struct {
	docs []model.Document
	err  error
}

func (f *fakeRegistry) Create(doc *model.Document) error {
	if f.err != nil {
		return f.err
	}
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeRegistry) List() ([]model.Document, error) {
	return f.docs, f.err
}

func (f *fakeRegistry) GetByID(id string) (*model.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.docs {
		if f.docs[i].ID == id {
			doc := f.docs[i]
			return &doc, nil
		}
	}
	return nil, nil
}

type fakeAuditLog struct {
	records []model.IngestionRecord
}

func (f *fakeAuditLog) ListByDocumentID(documentID string) ([]model.IngestionRecord, error) {
	var out []model.IngestionRecord
	for _, r := range f.records {
		if r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []model.IngestionEvent
}

func (f *fakePublisher) Publish(ctx context.Context, event model.IngestionEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeCache struct {
	stored map[string]*model.AnswerResult
	getErr error
	sets   int
}

func (f *fakeCache) Get(ctx context.Context, question string) (*model.AnswerResult, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	result, ok := f.stored[question]
	return result, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, question string, result *model.AnswerResult) error {
	f.sets++
	if f.stored == nil {
		f.stored = make(map[string]*model.AnswerResult)
	}
	f.stored[question] = result
	return nil
}
