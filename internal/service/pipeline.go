package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

// maxMessageRunes caps accepted input; longer messages are truncated, not
// rejected.
const maxMessageRunes = 1000

// ErrInvalidRequest marks client errors (empty message or user name) that
// must never reach the LLM pipeline.
var ErrInvalidRequest = errors.New("message and userName are required")

// ChatRequest is one inbound user turn.
type ChatRequest struct {
	Message  string `json:"message" binding:"required"`
	UserName string `json:"userName" binding:"required"`
	UserID   string `json:"userId"`
}

// ChatResponse is the pipeline's answer for one turn.
type ChatResponse struct {
	Text         string   `json:"text"`
	MediaURLs    []string `json:"mediaUrls"`
	FAQID        *int64   `json:"faqId"`
	QueryID      string   `json:"queryId"`
	PipelineLogs []string `json:"pipelineLogs,omitempty"`
}

// MessageStore is the message persistence the pipeline needs: logging turns
// plus the decision cache operations.
type MessageStore interface {
	Create(ctx context.Context, msg *domain.Message) error
	DecisionStore
}

// FAQStore is read-only FAQ access.
type FAQStore interface {
	List(ctx context.Context) ([]domain.FAQ, error)
	GetByID(ctx context.Context, id int64) (*domain.FAQ, error)
}

// MediaStore is read-only media access.
type MediaStore interface {
	List(ctx context.Context) ([]domain.Media, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Media, error)
	ListDiagrams(ctx context.Context) ([]domain.Media, error)
}

// URLResolver turns a storage key into a public URL. Satisfied by the object
// storage client; nil disables key-based resolution.
type URLResolver interface {
	GetURL(key string) string
}

// PipelineConfig holds orchestrator settings.
type PipelineConfig struct {
	// Model used for answer generation (education, general, FAQ no-match).
	Model string
	// TraceInReply mirrors the per-stage trace into the response payload.
	TraceInReply bool
}

// Pipeline sequences the full request flow: validate, cache lookup, language
// detection, translation in, intent resolution, routing, branch answer
// assembly, translation out, cache write-through, respond. Every
// external-service step has a defined fallback so a response is always
// produced.
type Pipeline struct {
	messages   MessageStore
	faqs       FAQStore
	media      MediaStore
	cache      *CacheManager
	translator *Translator
	intents    *IntentNormalizer
	router     *StrictRouter
	matcher    *FAQMatcher
	llm        CompletionProvider
	urls       URLResolver
	model      string
	trace      bool
}

// NewPipeline wires the orchestrator.
func NewPipeline(
	messages MessageStore,
	faqs FAQStore,
	media MediaStore,
	cache *CacheManager,
	translator *Translator,
	intents *IntentNormalizer,
	router *StrictRouter,
	matcher *FAQMatcher,
	llm CompletionProvider,
	urls URLResolver,
	cfg *PipelineConfig,
) *Pipeline {
	return &Pipeline{
		messages:   messages,
		faqs:       faqs,
		media:      media,
		cache:      cache,
		translator: translator,
		intents:    intents,
		router:     router,
		matcher:    matcher,
		llm:        llm,
		urls:       urls,
		model:      cfg.Model,
		trace:      cfg.TraceInReply,
	}
}

// resolved carries one decision through the pipeline together with its
// provenance, replacing the boolean-flag threading the branches would
// otherwise need.
type resolved[T any] struct {
	value  T
	cached bool
}

// Handle runs the pipeline for one turn. The only errors returned are
// ErrInvalidRequest for malformed input and storage failures while logging
// the user turn; everything downstream degrades to a fallback answer.
func (p *Pipeline) Handle(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	// Validate
	text := strings.TrimSpace(req.Message)
	if text == "" || strings.TrimSpace(req.UserName) == "" {
		return nil, ErrInvalidRequest
	}
	if runes := []rune(text); len(runes) > maxMessageRunes {
		text = string(runes[:maxMessageRunes])
	}

	queryID := uuid.New().String()
	conversationID := req.UserID
	if conversationID == "" {
		conversationID = queryID
	}
	ctx = logger.SetQueryID(ctx, queryID)
	ctx = logger.SetConversationID(ctx, conversationID)

	// Log the user turn first; its row id is the explicit write-back target
	// for the decision cache.
	userMsg := &domain.Message{
		ConversationID: conversationID,
		Sender:         domain.SenderUser,
		Text:           text,
		QueryID:        queryID,
	}
	if err := p.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to log user message: %w", err)
	}

	trace := make([]string, 0, 8)
	note := func(format string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(format, args...))
	}

	// CacheLookup
	cached, hit := p.cache.Lookup(ctx, text, PipelineVersion)
	if hit {
		note("cache: hit (route=%s)", cached.Route)
	} else {
		note("cache: miss")
	}

	// DetectLanguage - always runs; the final answer needs it even on a hit.
	lang := DetectLanguage(text)
	note("language: %s", lang)

	// TranslateIn - translation itself is not cached, only decisions are.
	englishQuery := p.translator.ToEnglish(ctx, text, lang)

	// ResolveIntent
	intent := p.resolveIntent(ctx, englishQuery, cached)
	if intent.cached {
		note("intent: cached %q", intent.value)
	} else {
		note("intent: computed %q", intent.value)
	}

	// ResolveRoute
	route := p.resolveRoute(ctx, intent.value, cached)
	if route.cached {
		note("route: %s (cached)", route.value)
	} else {
		note("route: %s", route.value)
	}
	ctx = logger.WithField(ctx, logger.FieldRoute, string(route.value))

	// Branch
	answer := p.answer(ctx, route.value, intent.value, englishQuery, lang, cached, note)

	// TranslateOut - canned branch replies are pre-localized; fallback
	// strings are too.
	if answer.translate && lang != LanguageEnglish {
		answer.text = p.translator.FromEnglish(ctx, answer.text, lang)
		note("translate: answer localized to %s", lang)
	}

	// PersistCache - best-effort write-through onto the user row.
	p.cache.Store(ctx, userMsg.ID, &CachedDecision{
		Intent: intent.value,
		Route:  route.value,
		FAQID:  answer.faqID,
	}, PipelineVersion)

	// Log the bot turn; failure here must not lose the answer.
	botMsg := &domain.Message{
		ConversationID: conversationID,
		Sender:         domain.SenderBot,
		Text:           answer.text,
		MediaURLs:      domain.StringArray(answer.mediaURLs),
		QueryID:        queryID,
	}
	if err := p.messages.Create(ctx, botMsg); err != nil {
		logger.CtxWarn(ctx, "Failed to log bot message: error=%v", err)
	}

	logger.With(logger.Fields{
		logger.FieldCacheHit: hit,
		logger.FieldStatus:   "ok",
	}).Info(ctx, "Pipeline completed: route=%s, faq_matched=%t", route.value, answer.faqID != nil)

	resp := &ChatResponse{
		Text:      answer.text,
		MediaURLs: answer.mediaURLs,
		FAQID:     answer.faqID,
		QueryID:   queryID,
	}
	if p.trace {
		resp.PipelineLogs = trace
	}
	return resp, nil
}

// resolveIntent prefers the cached canonical intent and computes one
// otherwise.
func (p *Pipeline) resolveIntent(ctx context.Context, englishQuery string, cached *CachedDecision) resolved[string] {
	if cached != nil && cached.Intent != "" {
		return resolved[string]{value: cached.Intent, cached: true}
	}
	return resolved[string]{value: p.intents.Normalize(ctx, englishQuery)}
}

// resolveRoute prefers the cached route and classifies otherwise.
func (p *Pipeline) resolveRoute(ctx context.Context, intent string, cached *CachedDecision) resolved[Route] {
	if cached != nil {
		return resolved[Route]{value: cached.Route, cached: true}
	}
	return resolved[Route]{value: p.router.Route(ctx, intent)}
}

// branchAnswer is the assembled result of the route branch.
type branchAnswer struct {
	text      string
	mediaURLs []string
	faqID     *int64
	translate bool // canned and fallback replies are already localized
}

// answer executes the route branch and assembles text plus attachments.
func (p *Pipeline) answer(ctx context.Context, route Route, intent, englishQuery string, lang Language, cached *CachedDecision, note func(string, ...interface{})) branchAnswer {
	switch route {
	case RouteGreeting:
		return branchAnswer{text: prompts.Reply(prompts.Greetings, string(lang)), mediaURLs: []string{}}
	case RouteMeta:
		return branchAnswer{text: prompts.Reply(prompts.MetaReplies, string(lang)), mediaURLs: []string{}}
	case RouteIrrelevant:
		return branchAnswer{text: prompts.Reply(prompts.IrrelevantReplies, string(lang)), mediaURLs: []string{}}
	case RouteFAQ:
		return p.answerFAQ(ctx, intent, englishQuery, lang, cached, note)
	case RouteGeneral:
		return p.generate(ctx, prompts.GeneralDentalSystemPrompt, englishQuery, lang)
	default: // EDUCATION, including the router's safe fallback
		out := p.generate(ctx, prompts.EducationSystemPrompt, intent, lang)
		out.mediaURLs = p.diagramURLs(ctx, note)
		return out
	}
}

// answerFAQ resolves the FAQ branch: a cached decision is trusted outright,
// including a cached null meaning "already searched, nothing matched".
func (p *Pipeline) answerFAQ(ctx context.Context, intent, englishQuery string, lang Language, cached *CachedDecision, note func(string, ...interface{})) branchAnswer {
	if cached != nil {
		if cached.FAQID == nil {
			note("faq: cached no-match, search suppressed")
			return p.generate(ctx, prompts.FAQNoMatchSystemPrompt, englishQuery, lang)
		}
		faq, err := p.faqs.GetByID(ctx, *cached.FAQID)
		if err != nil || faq == nil {
			logger.CtxWarn(ctx, "Cached FAQ %d unavailable: error=%v", *cached.FAQID, err)
			note("faq: cached id %d unavailable", *cached.FAQID)
			return p.generate(ctx, prompts.FAQNoMatchSystemPrompt, englishQuery, lang)
		}
		note("faq: cached match id=%d", faq.ID)
		return p.faqAnswer(ctx, faq, nil)
	}

	// Fresh search: the FAQ library and the media library are independent
	// reads, fetched concurrently and awaited jointly.
	var (
		wg       sync.WaitGroup
		faqs     []domain.FAQ
		allMedia []domain.Media
		faqErr   error
		mediaErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		faqs, faqErr = p.faqs.List(ctx)
	}()
	go func() {
		defer wg.Done()
		allMedia, mediaErr = p.media.List(ctx)
	}()
	wg.Wait()

	if faqErr != nil {
		logger.CtxWarn(ctx, "FAQ list unavailable: error=%v", faqErr)
		faqs = nil
	}
	if mediaErr != nil {
		logger.CtxWarn(ctx, "Media list unavailable: error=%v", mediaErr)
		allMedia = nil
	}

	note("faq: searching library (%d faqs)", len(faqs))
	faq := p.matcher.Match(ctx, intent, faqs)
	if faq == nil {
		note("faq: no match")
		return p.generate(ctx, prompts.FAQNoMatchSystemPrompt, englishQuery, lang)
	}
	note("faq: matched id=%d", faq.ID)
	return p.faqAnswer(ctx, faq, allMedia)
}

// faqAnswer packages a matched FAQ's stored answer and linked media. When the
// media library was already prefetched it is reused, otherwise the linked
// rows are fetched by id.
func (p *Pipeline) faqAnswer(ctx context.Context, faq *domain.FAQ, prefetched []domain.Media) branchAnswer {
	urls := []string{}
	if len(faq.MediaIDs) > 0 {
		if prefetched != nil {
			urls = p.resolveURLs(pickMedia(prefetched, faq.MediaIDs))
		} else {
			media, err := p.media.ListByIDs(ctx, faq.MediaIDs)
			if err != nil {
				logger.CtxWarn(ctx, "FAQ media lookup failed: faq=%d, error=%v", faq.ID, err)
			} else {
				urls = p.resolveURLs(media)
			}
		}
	}
	id := faq.ID
	return branchAnswer{text: faq.Answer, mediaURLs: urls, faqID: &id, translate: true}
}

// pickMedia selects rows from the prefetched library in id-list order.
func pickMedia(library []domain.Media, ids []int64) []domain.Media {
	byID := make(map[int64]domain.Media, len(library))
	for _, m := range library {
		byID[m.ID] = m
	}
	picked := make([]domain.Media, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			picked = append(picked, m)
		}
	}
	return picked
}

// generate issues one completion call with the branch prompt; on failure the
// pre-localized safe fallback string is returned and reverse translation is
// skipped.
func (p *Pipeline) generate(ctx context.Context, system, user string, lang Language) branchAnswer {
	out, err := p.llm.Complete(ctx, &CompletionRequest{
		Model:       p.model,
		System:      system,
		User:        user,
		Temperature: 0.4,
		MaxTokens:   400,
	})
	if err != nil || strings.TrimSpace(out) == "" {
		logger.CtxWarn(ctx, "Answer generation failed, using safe fallback: error=%v", err)
		return branchAnswer{text: prompts.Reply(prompts.SafeFallbacks, string(lang)), mediaURLs: []string{}}
	}
	return branchAnswer{text: strings.TrimSpace(out), mediaURLs: []string{}, translate: true}
}

// diagramURLs loads the diagram media attached to every education answer.
// Unavailable media never blocks the answer.
func (p *Pipeline) diagramURLs(ctx context.Context, note func(string, ...interface{})) []string {
	diagrams, err := p.media.ListDiagrams(ctx)
	if err != nil {
		logger.CtxWarn(ctx, "Diagram media unavailable: error=%v", err)
		return []string{}
	}
	if len(diagrams) > 0 {
		note("media: %d diagrams attached", len(diagrams))
	}
	return p.resolveURLs(diagrams)
}

// resolveURLs maps media rows to public URLs: the stored URL wins, otherwise
// the storage key is resolved through the object storage client.
func (p *Pipeline) resolveURLs(media []domain.Media) []string {
	urls := make([]string, 0, len(media))
	for _, m := range media {
		switch {
		case m.URL != "":
			urls = append(urls, m.URL)
		case m.StorageKey != "" && p.urls != nil:
			urls = append(urls, p.urls.GetURL(m.StorageKey))
		}
	}
	return urls
}
