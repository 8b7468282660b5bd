package services

import (
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// FindSimilar ranks candidates against the query and returns at most k
// results, best first. Candidates without a stored embedding, or whose
// embedding length differs from the query vector's, are excluded before
// scoring - a missing vector is not scored as zero, it is not scored.
// Ties keep the original candidate order (stable sort).
//
// k is accepted as any positive value here; call sites clamp it to
// their configured range. No scorable candidates yields an empty slice,
// never an error.
func FindSimilar[T domain.Retrievable](
	queryText string,
	queryEmbedding []float32,
	candidates []T,
	k int,
) []domain.ScoreResult[T] {
	if k <= 0 || len(queryEmbedding) == 0 {
		return nil
	}

	q := prepareQuery(queryText, queryEmbedding)

	results := make([]domain.ScoreResult[T], 0, len(candidates))
	for _, candidate := range candidates {
		vec := candidate.Vector()
		if len(vec) == 0 || len(vec) != len(queryEmbedding) {
			continue
		}
		results = append(results, scoreAgainst(q, candidate))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
