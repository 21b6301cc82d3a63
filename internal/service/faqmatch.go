package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

const (
	// faqTopN is how many similarity-ranked candidates reach the selection
	// prompt. No threshold is applied before that stage: recall first,
	// precision second.
	faqTopN = 5

	// faqSimilarityFloor gates the degraded path. When the selection call
	// fails, the top candidate is returned only above this raw similarity.
	faqSimilarityFloor = 0.5
)

// FAQMatcher resolves a canonical intent against the FAQ library: embed,
// rank by cosine similarity, then let the completion backend pick the single
// best candidate (or none).
type FAQMatcher struct {
	llm      CompletionProvider
	embedder EmbeddingProvider
	model    string
}

// NewFAQMatcher creates a matcher bound to the given backends.
func NewFAQMatcher(llm CompletionProvider, embedder EmbeddingProvider, model string) *FAQMatcher {
	return &FAQMatcher{llm: llm, embedder: embedder, model: model}
}

type faqCandidate struct {
	faq   domain.FAQ
	score float32
}

// Match returns the best-matching FAQ for canonicalIntent, or nil when no
// candidate clearly matches. Never errors: embedding or selection failures
// degrade to the similarity-floor fallback.
func (m *FAQMatcher) Match(ctx context.Context, canonicalIntent string, faqs []domain.FAQ) *domain.FAQ {
	if len(faqs) == 0 {
		return nil
	}

	queryVec, err := m.embedder.Embed(ctx, canonicalIntent)
	if err != nil {
		logger.CtxWarn(ctx, "Intent embedding failed, no FAQ match possible: error=%v", err)
		return nil
	}

	candidates := rankFAQs(queryVec, faqs)
	if len(candidates) > faqTopN {
		candidates = candidates[:faqTopN]
	}

	selected, err := m.selectCandidate(ctx, canonicalIntent, candidates)
	if err != nil {
		logger.CtxWarn(ctx, "FAQ selection failed, falling back to similarity floor: error=%v", err)
		if candidates[0].score > faqSimilarityFloor {
			top := candidates[0].faq
			return &top
		}
		return nil
	}
	return selected
}

// rankFAQs scores every FAQ against the query vector and returns them in
// descending similarity order. Sorting is stable so equal scores keep their
// library order.
func rankFAQs(queryVec []float32, faqs []domain.FAQ) []faqCandidate {
	candidates := make([]faqCandidate, 0, len(faqs))
	for _, faq := range faqs {
		candidates = append(candidates, faqCandidate{
			faq:   faq,
			score: CosineSimilarity(queryVec, faq.Embedding),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// selectCandidate presents the candidates as a numbered list and parses the
// model's choice. An unparsable or out-of-range answer counts as NONE: better
// to fall through to generation than to answer wrong.
func (m *FAQMatcher) selectCandidate(ctx context.Context, canonicalIntent string, candidates []faqCandidate) (*domain.FAQ, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Patient intent: %s\n\nFAQ candidates:\n", canonicalIntent)
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c.faq.Intent)
	}

	out, err := m.llm.Complete(ctx, &CompletionRequest{
		Model:       m.model,
		System:      prompts.FAQSelectionSystemPrompt,
		User:        sb.String(),
		Temperature: 0,
		MaxTokens:   5,
	})
	if err != nil {
		return nil, err
	}

	answer := strings.ToUpper(strings.Trim(strings.TrimSpace(out), ".,!\"'"))
	if answer == "" || answer == "NONE" {
		return nil, nil
	}

	idx, convErr := strconv.Atoi(answer)
	if convErr != nil || idx < 1 || idx > len(candidates) {
		logger.CtxWarn(ctx, "FAQ selection returned unusable answer %q, treating as NONE", out)
		return nil, nil
	}

	selected := candidates[idx-1].faq
	return &selected, nil
}

// CosineSimilarity computes the standard dot-product-over-norms similarity.
// Empty, mismatched-length, or zero vectors score exactly 0 - never NaN,
// never an error.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
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
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
