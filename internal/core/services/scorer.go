package services

import (
	"math"
	"strings"
	"unicode"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// Hybrid scoring weights. The values are carried over unchanged from the
// original tuning; treat them as knobs, not derived quantities.
const (
	// KeywordBoostPerToken is added per shared token between query and
	// candidate, up to KeywordBoostCap.
	KeywordBoostPerToken = 0.10

	// KeywordBoostCap limits the total keyword contribution.
	KeywordBoostCap = 0.25

	// ExactMatchBoost is added when the normalised query equals the
	// normalised candidate text.
	ExactMatchBoost = 0.15

	// SupersetBoost is added when the candidate's token set contains
	// every query token. Stacks with ExactMatchBoost.
	SupersetBoost = 0.10

	// minTokenLength drops noise tokens like "a" or "I".
	minTokenLength = 2
)

// Normalise lowercases, trims, and collapses internal whitespace runs to
// single spaces. Applied identically to query and candidate text so the
// lexical heuristics compare like with like.
func Normalise(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Tokenise splits normalised text on whitespace and punctuation, drops
// tokens shorter than two characters, and deduplicates into a set.
func Tokenise(text string) map[string]struct{} {
	fields := strings.FieldsFunc(Normalise(text), func(r rune) bool {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case ',', ';', '.', '!', '?', '(', ')', '[', ']', '{', '}', '"', '\'':
			return true
		}
		return false
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens[f] = struct{}{}
		}
	}
	return tokens
}

// RemappedCosine returns cosine similarity remapped from [-1, 1] to
// [0, 1] via (cos+1)/2. Mismatched vector lengths and zero vectors
// score 0; stored vectors from a different embedding model should have
// been filtered before scoring, this is the defensive floor.
func RemappedCosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}

// preparedQuery caches the query-side normalisation so one query can be
// scored against many candidates without rework.
type preparedQuery struct {
	normalised string
	tokens     map[string]struct{}
	vector     []float32
}

func prepareQuery(text string, vector []float32) preparedQuery {
	return preparedQuery{
		normalised: Normalise(text),
		tokens:     Tokenise(text),
		vector:     vector,
	}
}

// scoreAgainst computes the hybrid score of one candidate. Pure, no I/O,
// identical for RAG chunks and memory facts.
func scoreAgainst[T domain.Retrievable](q preparedQuery, candidate T) domain.ScoreResult[T] {
	similarity := RemappedCosine(q.vector, candidate.Vector())

	candNorm := Normalise(candidate.Text())
	candTokens := Tokenise(candidate.Text())

	shared := 0
	for tok := range q.tokens {
		if _, ok := candTokens[tok]; ok {
			shared++
		}
	}
	keyword := math.Min(KeywordBoostCap, KeywordBoostPerToken*float64(shared))

	exact := 0.0
	if q.normalised != "" && q.normalised == candNorm {
		exact += ExactMatchBoost
	}
	if len(q.tokens) > 0 && shared == len(q.tokens) {
		exact += SupersetBoost
	}

	return domain.ScoreResult[T]{
		Item:                candidate,
		Score:               math.Min(1.0, similarity+keyword+exact),
		EmbeddingSimilarity: similarity,
		KeywordBoost:        keyword,
		ExactMatchBoost:     exact,
	}
}

// Score computes the hybrid relevance of a single candidate against a
// query. Exposed for callers that score one pair at a time; FindSimilar
// is the batch path.
func Score[T domain.Retrievable](queryText string, queryEmbedding []float32, candidate T) domain.ScoreResult[T] {
	return scoreAgainst(prepareQuery(queryText, queryEmbedding), candidate)
}
