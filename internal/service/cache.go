package service

import (
	"context"
	"strings"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"github.com/zunxo7/DentalCare-AI/internal/logger"
)

// PipelineVersion tags every cached classification decision. Bump it
// whenever the routing or intent prompts, the label set, or the cache key
// semantics change incompatibly; old rows then stop matching and are
// recomputed on demand.
const PipelineVersion = 3

// CachedDecision is the (canonical_intent, route, resolved_faq_id) triple
// read from a prior completed message row. A nil FAQID on a FAQ-routed
// decision means "search already ran, found nothing" and must suppress a
// fresh search.
type CachedDecision struct {
	Intent string
	Route  Route
	FAQID  *int64
}

// DecisionStore is the message-row access the cache needs.
type DecisionStore interface {
	LatestDecision(ctx context.Context, text string, pipelineVersion int) (*domain.Message, error)
	SaveDecision(ctx context.Context, id uint, intent, route string, faqID *int64, pipelineVersion int) error
}

// SettingStore reads the cache toggle.
type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// CacheManager is the read-through/write-through cache over prior message
// rows, gated by a single boolean setting. Caching is an optimization, never
// a correctness requirement: read errors become misses and write errors are
// swallowed.
type CacheManager struct {
	messages       DecisionStore
	settings       SettingStore
	defaultEnabled bool
}

// NewCacheManager creates a cache manager. defaultEnabled applies when the
// setting row is absent or unreadable (fail-open).
func NewCacheManager(messages DecisionStore, settings SettingStore, defaultEnabled bool) *CacheManager {
	return &CacheManager{
		messages:       messages,
		settings:       settings,
		defaultEnabled: defaultEnabled,
	}
}

// Enabled consults the cache toggle. A read error defaults to enabled so the
// feature only degrades to always-compute intentionally, not on a DB hiccup.
func (c *CacheManager) Enabled(ctx context.Context) bool {
	value, err := c.settings.Get(ctx, domain.SettingCacheEnabled)
	if err != nil {
		logger.CtxWarn(ctx, "Cache setting unreadable, failing open: error=%v", err)
		return c.defaultEnabled
	}
	if value == "" {
		return c.defaultEnabled
	}
	return strings.EqualFold(value, "true")
}

// Lookup finds the most recent completed decision for byte-identical raw
// text under the current pipeline version. Returns (nil, false) on a miss or
// when caching is disabled; read errors are logged and treated as misses.
func (c *CacheManager) Lookup(ctx context.Context, rawText string, pipelineVersion int) (*CachedDecision, bool) {
	if !c.Enabled(ctx) {
		return nil, false
	}

	row, err := c.messages.LatestDecision(ctx, rawText, pipelineVersion)
	if err != nil {
		logger.CtxWarn(ctx, "Cache read failed, treating as miss: error=%v", err)
		return nil, false
	}
	if row == nil || row.Route == nil {
		return nil, false
	}

	route, ok := ParseRoute(*row.Route)
	if !ok {
		logger.CtxWarn(ctx, "Cached row %d carries invalid route %q, ignoring", row.ID, *row.Route)
		return nil, false
	}

	decision := &CachedDecision{Route: route, FAQID: row.ResolvedFAQID}
	if row.CanonicalIntent != nil {
		decision.Intent = *row.CanonicalIntent
	}
	return decision, true
}

// Store writes the computed decision onto the triggering message row,
// best-effort. Skipped entirely when caching is disabled; failures are
// logged and swallowed so a cache write never fails the user-visible
// response.
func (c *CacheManager) Store(ctx context.Context, messageID uint, decision *CachedDecision, pipelineVersion int) {
	if !c.Enabled(ctx) {
		return
	}
	if err := c.messages.SaveDecision(ctx, messageID, decision.Intent, string(decision.Route), decision.FAQID, pipelineVersion); err != nil {
		logger.CtxWarn(ctx, "Cache write failed for message %d: error=%v", messageID, err)
	}
}
