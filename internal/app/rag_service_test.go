package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-assistant/internal/model"
)

func newTestRAGService(embedder *fakeEmbedder, index *fakeIndex, llm *fakeLLM, cache AnswerCache) *RAGService {
	return NewRAGService(embedder, index, llm, cache, 0, 0)
}

func TestDetailedAnswer_EmptyQuestionRejectedBeforeCollaborators(t *testing.T) {
	embedder := &fakeEmbedder{}
	index := &fakeIndex{}
	llm := &fakeLLM{answer: "unused"}
	svc := newTestRAGService(embedder, index, llm, nil)

	_, err := svc.DetailedAnswer(context.Background(), "   \t  ")

	require.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Zero(t, embedder.embedCalls)
	assert.Zero(t, index.queryCalls)
	assert.Zero(t, llm.calls)
}

func TestDetailedAnswer_ContextSortedByScore(t *testing.T) {
	index := &fakeIndex{matches: []model.ScoredMatch{
		match(0.7, "b", "doc"),
		match(0.9, "a", "doc"),
		match(0.5, "c", "doc"),
	}}
	llm := &fakeLLM{answer: "the answer"}
	svc := newTestRAGService(&fakeEmbedder{}, index, llm, nil)

	result, err := svc.DetailedAnswer(context.Background(), "what?")

	require.NoError(t, err)
	assert.Equal(t, "the answer", result.Answer)
	assert.True(t, strings.HasPrefix(llm.user, "Context: a\n\nb\n\nc\n\nQuestion: what?"))
	assert.Equal(t, systemPrompt, llm.system)
	assert.Equal(t, defaultMaxAnswerTokens, llm.maxTokens)
}

func TestDetailedAnswer_SourcesDedupedFirstSeen(t *testing.T) {
	index := &fakeIndex{matches: []model.ScoredMatch{
		match(0.9, "one", "A"),
		match(0.8, "two", "B"),
		match(0.7, "three", "A"),
		match(0.6, "four", "C"),
	}}
	svc := newTestRAGService(&fakeEmbedder{}, index, &fakeLLM{answer: "ok"}, nil)

	result, err := svc.DetailedAnswer(context.Background(), "sources?")

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, result.SourcesUsed)
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))
}

func TestDetailedAnswer_NoMatchesStillAsksModel(t *testing.T) {
	index := &fakeIndex{}
	llm := &fakeLLM{answer: "I don't know"}
	svc := newTestRAGService(&fakeEmbedder{}, index, llm, nil)

	result, err := svc.DetailedAnswer(context.Background(), "anything indexed?")

	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	assert.True(t, strings.HasPrefix(llm.user, "Context: \n\nQuestion:"))
	assert.Empty(t, result.SourcesUsed)
}

func TestDetailedAnswer_DefaultTopK(t *testing.T) {
	index := &fakeIndex{}
	svc := newTestRAGService(&fakeEmbedder{}, index, &fakeLLM{answer: "ok"}, nil)

	_, err := svc.DetailedAnswer(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, defaultTopK, index.lastTopK)
}

func TestDetailedAnswer_StageLabelledFailures(t *testing.T) {
	t.Run("embedding", func(t *testing.T) {
		embedder := &fakeEmbedder{embedErr: errors.New("boom")}
		svc := newTestRAGService(embedder, &fakeIndex{}, &fakeLLM{}, nil)

		_, err := svc.DetailedAnswer(context.Background(), "q")

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "embedding", svcErr.Stage)
	})

	t.Run("retrieval", func(t *testing.T) {
		index := &fakeIndex{queryErr: errors.New("index down")}
		svc := newTestRAGService(&fakeEmbedder{}, index, &fakeLLM{}, nil)

		_, err := svc.DetailedAnswer(context.Background(), "q")

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "retrieval", svcErr.Stage)
	})

	t.Run("generation", func(t *testing.T) {
		llm := &fakeLLM{err: errors.New("model overloaded")}
		svc := newTestRAGService(&fakeEmbedder{}, &fakeIndex{}, llm, nil)

		_, err := svc.DetailedAnswer(context.Background(), "q")

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "generation", svcErr.Stage)
	})
}

func TestAnswer_ReturnsPlainText(t *testing.T) {
	svc := newTestRAGService(&fakeEmbedder{}, &fakeIndex{}, &fakeLLM{answer: "plain"}, nil)

	answer, err := svc.Answer(context.Background(), "legacy?")

	require.NoError(t, err)
	assert.Equal(t, "plain", answer)
}

func TestDetailedAnswer_CacheHitSkipsPipeline(t *testing.T) {
	cached := &model.AnswerResult{Answer: "from cache", SourcesUsed: []string{"A"}}
	cache := &fakeCache{stored: map[string]*model.AnswerResult{"hot question": cached}}
	embedder := &fakeEmbedder{}
	llm := &fakeLLM{answer: "never"}
	svc := newTestRAGService(embedder, &fakeIndex{}, llm, cache)

	result, err := svc.DetailedAnswer(context.Background(), "hot question")

	require.NoError(t, err)
	assert.Equal(t, cached, result)
	assert.Zero(t, embedder.embedCalls)
	assert.Zero(t, llm.calls)
}

func TestDetailedAnswer_CacheErrorIsIgnored(t *testing.T) {
	cache := &fakeCache{getErr: errors.New("redis down")}
	svc := newTestRAGService(&fakeEmbedder{}, &fakeIndex{}, &fakeLLM{answer: "computed"}, cache)

	result, err := svc.DetailedAnswer(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "computed", result.Answer)
}

func TestDetailedAnswer_StoresResultInCache(t *testing.T) {
	cache := &fakeCache{}
	svc := newTestRAGService(&fakeEmbedder{}, &fakeIndex{}, &fakeLLM{answer: "fresh"}, cache)

	_, err := svc.DetailedAnswer(context.Background(), "cache me")

	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}
