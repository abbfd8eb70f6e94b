package app

import (
	"sort"
	"strings"

	"rag-assistant/internal/model"
)

// assemble turns scored matches into a retrieval context. Matches are
// re-sorted by descending score regardless of the order the store returned
// them in (stable, so ties keep the store's relative order), chunk texts
// are joined with blank lines, and document names are collected in
// first-seen order. Duplicate chunk texts are kept; only names dedupe.
func assemble(matches []model.ScoredMatch) model.RetrievalResult {
	sorted := make([]model.ScoredMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var context strings.Builder
	sources := make([]string, 0, len(sorted))
	seen := make(map[string]bool, len(sorted))
	for i, match := range sorted {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(match.Metadata[model.MetaText])

		name := match.Metadata[model.MetaDocumentName]
		if name != "" && !seen[name] {
			seen[name] = true
			sources = append(sources, name)
		}
	}

	return model.RetrievalResult{
		Context: context.String(),
		Sources: sources,
	}
}
