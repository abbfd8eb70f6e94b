package app

import (
	"context"
	"log"
	"strings"
	"time"

	"rag-assistant/internal/model"
)

const (
	defaultTopK            = 3
	defaultMaxAnswerTokens = 500

	systemPrompt = "You are a helpful assistant that answers questions based on the provided context."
)

// RAGService owns the read path: embed the question, query the index,
// assemble a context, and generate an answer.
type RAGService struct {
	embedder EmbeddingClient
	index    VectorIndex
	llm      CompletionClient
	cache    AnswerCache // optional

	topK            int
	maxAnswerTokens int
}

func NewRAGService(embedder EmbeddingClient, index VectorIndex, llm CompletionClient, cache AnswerCache, topK, maxAnswerTokens int) *RAGService {
	if topK <= 0 {
		topK = defaultTopK
	}
	if maxAnswerTokens <= 0 {
		maxAnswerTokens = defaultMaxAnswerTokens
	}
	return &RAGService{
		embedder:        embedder,
		index:           index,
		llm:             llm,
		cache:           cache,
		topK:            topK,
		maxAnswerTokens: maxAnswerTokens,
	}
}

// Answer returns only the generated answer text. Kept for compatibility
// with callers of the original plain-string endpoint.
func (s *RAGService) Answer(ctx context.Context, question string) (string, error) {
	result, err := s.DetailedAnswer(ctx, question)
	if err != nil {
		return "", err
	}
	return result.Answer, nil
}

// DetailedAnswer runs the full retrieval + generation pipeline and returns
// the answer together with its sources and wall-clock duration. Any stage
// failure aborts the request; no partial answer is returned.
func (s *RAGService) DetailedAnswer(ctx context.Context, question string) (*model.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	start := time.Now()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, question)
		if err != nil {
			log.Printf("answer cache get failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	queryEmbedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, &ServiceError{Stage: "embedding", Err: err}
	}

	matches, err := s.index.Query(ctx, queryEmbedding, s.topK, true)
	if err != nil {
		return nil, &ServiceError{Stage: "retrieval", Err: err}
	}

	// Zero matches is not an error: the model still gets asked, with an
	// empty context.
	retrieved := assemble(matches)

	userPrompt := "Context: " + retrieved.Context + "\n\nQuestion: " + question + "\n\nAnswer:"
	answer, err := s.llm.Complete(ctx, systemPrompt, userPrompt, s.maxAnswerTokens)
	if err != nil {
		return nil, &ServiceError{Stage: "generation", Err: err}
	}

	result := &model.AnswerResult{
		Answer:           answer,
		SourcesUsed:      retrieved.Sources,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, question, result); err != nil {
			log.Printf("answer cache set failed: %v", err)
		}
	}

	return result, nil
}
