package model

// AnswerResult is the detailed response for a question: the generated
// answer, the deduplicated source documents, and wall-clock duration.
type AnswerResult struct {
	Answer           string   `json:"answer"`
	SourcesUsed      []string `json:"sources_used"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
}
