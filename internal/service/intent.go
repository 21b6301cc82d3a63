package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

// maxIntentLen is the hard cap on a canonical intent phrase. The phrase is
// the cache and embedding key, so it must stay short and stable.
const maxIntentLen = 50

// fallbackIntentWords is how many significant words the heuristic fallback keeps.
const fallbackIntentWords = 6

var nonWordPattern = regexp.MustCompile(`[^a-z0-9\s]+`)

// IntentNormalizer rewrites an English query into a short canonical intent
// phrase. The LLM path runs at low temperature with a tight token budget to
// keep the rewrite stable across calls; the heuristic fallback is fully
// deterministic.
type IntentNormalizer struct {
	llm   CompletionProvider
	model string
}

// NewIntentNormalizer creates an intent normalizer bound to the given
// completion backend.
func NewIntentNormalizer(llm CompletionProvider, model string) *IntentNormalizer {
	return &IntentNormalizer{llm: llm, model: model}
}

// Normalize returns the canonical intent phrase for query. Never fails: any
// backend error falls through to the deterministic heuristic.
func (n *IntentNormalizer) Normalize(ctx context.Context, query string) string {
	out, err := n.llm.Complete(ctx, &CompletionRequest{
		Model:       n.model,
		System:      prompts.IntentSystemPrompt,
		User:        query,
		Temperature: 0,
		MaxTokens:   30,
	})
	if err != nil {
		logger.CtxWarn(ctx, "Intent rewrite failed, using heuristic: error=%v", err)
		return heuristicIntent(query)
	}

	intent := sanitizeIntent(out)
	if intent == "" {
		return heuristicIntent(query)
	}
	return intent
}

// sanitizeIntent lowercases, strips non-word runes, collapses whitespace,
// and hard-truncates to maxIntentLen.
func sanitizeIntent(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	cleaned := nonWordPattern.ReplaceAllString(lowered, " ")
	collapsed := strings.Join(strings.Fields(cleaned), " ")
	if len(collapsed) > maxIntentLen {
		collapsed = strings.TrimSpace(collapsed[:maxIntentLen])
	}
	return collapsed
}

// heuristicIntent is the deterministic, side-effect-free fallback: keep the
// words longer than 2 characters from the normalized query, take the first
// six, join with spaces.
func heuristicIntent(query string) string {
	cleaned := sanitizeIntent(query)
	kept := make([]string, 0, fallbackIntentWords)
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 2 {
			continue
		}
		kept = append(kept, w)
		if len(kept) == fallbackIntentWords {
			break
		}
	}
	if len(kept) == 0 {
		return cleaned
	}
	return strings.Join(kept, " ")
}
