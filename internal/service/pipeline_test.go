package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
)

// pipelineFixture wires a full pipeline over in-memory stores and scripted
// backends.
type pipelineFixture struct {
	llm      *fakeLLM
	embedder *fakeEmbedder
	messages *memMessages
	faqs     *memFAQs
	media    *memMedia
	pipeline *Pipeline
}

func newPipelineFixture(handler func(req *CompletionRequest) (string, error)) *pipelineFixture {
	llm := &fakeLLM{handler: handler}
	embedder := &fakeEmbedder{vec: []float32{1, 0, 0}}
	messages := newMemMessages()
	faqs := &memFAQs{}
	media := &memMedia{}
	settings := &memSettings{values: map[string]string{domain.SettingCacheEnabled: "true"}}

	cache := NewCacheManager(messages, settings, true)
	translator := NewTranslator(llm, "gen-model")
	intents := NewIntentNormalizer(llm, "gen-model")
	strictRouter := NewStrictRouter(llm, &RouterConfig{PrimaryModel: "router-primary", SecondaryModel: "router-secondary"})
	matcher := NewFAQMatcher(llm, embedder, "gen-model")

	return &pipelineFixture{
		llm:      llm,
		embedder: embedder,
		messages: messages,
		faqs:     faqs,
		media:    media,
		pipeline: NewPipeline(messages, faqs, media, cache, translator, intents, strictRouter, matcher, llm, nil,
			&PipelineConfig{Model: "gen-model", TraceInReply: true}),
	}
}

// scriptedHandler answers intent and routing deterministically and delegates
// everything else.
func scriptedHandler(intent, route string, rest func(req *CompletionRequest) (string, error)) func(req *CompletionRequest) (string, error) {
	return func(req *CompletionRequest) (string, error) {
		switch {
		case req.System == prompts.IntentSystemPrompt:
			return intent, nil
		case req.System == prompts.RouterSystemPrompt || req.System == prompts.RouterCompactPrompt:
			return route, nil
		default:
			if rest != nil {
				return rest(req)
			}
			return "", fmt.Errorf("unexpected completion: %.40s", req.System)
		}
	}
}

func TestPipelineRejectsInvalidInput(t *testing.T) {
	fix := newPipelineFixture(nil)

	tests := []struct {
		name string
		req  ChatRequest
	}{
		{"empty message", ChatRequest{Message: "   ", UserName: "Sam"}},
		{"empty user name", ChatRequest{Message: "hi", UserName: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fix.pipeline.Handle(context.Background(), &tt.req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}
	if len(fix.messages.userRows()) != 0 {
		t.Error("rejected requests must not be logged")
	}
}

func TestPipelineGreeting(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("greeting hello", "GREETING", nil))

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "hi", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if resp.Text != prompts.Greetings["english"] {
		t.Errorf("text = %q, want canned english greeting", resp.Text)
	}
	if resp.FAQID != nil {
		t.Errorf("faqID = %v, want nil", resp.FAQID)
	}
	if resp.QueryID == "" {
		t.Error("queryID must be set")
	}
	if len(resp.MediaURLs) != 0 {
		t.Errorf("mediaURLs = %v, want empty", resp.MediaURLs)
	}

	users, bots := fix.messages.userRows(), fix.messages.botRows()
	if len(users) != 1 || len(bots) != 1 {
		t.Fatalf("rows: %d user, %d bot, want 1 each", len(users), len(bots))
	}
	if users[0].QueryID != resp.QueryID || bots[0].QueryID != resp.QueryID {
		t.Error("both rows must carry the response query id")
	}
	if users[0].Route == nil || *users[0].Route != "GREETING" {
		t.Errorf("persisted route = %v, want GREETING", users[0].Route)
	}
	if users[0].PipelineVersion == nil || *users[0].PipelineVersion != PipelineVersion {
		t.Errorf("persisted version = %v, want %d", users[0].PipelineVersion, PipelineVersion)
	}
}

func TestPipelineUrduCannedReply(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("greeting hello", "GREETING",
		func(req *CompletionRequest) (string, error) {
			if strings.HasPrefix(req.System, "Translate the user's message to English") {
				return "hello", nil
			}
			return "", fmt.Errorf("unexpected completion")
		}))

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "السلام علیکم", UserName: "Ali"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.Text != prompts.Greetings["urdu"] {
		t.Errorf("text = %q, want canned urdu greeting", resp.Text)
	}
}

func TestPipelineTruncatesLongMessage(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("long message intent", "GREETING", nil))

	long := strings.Repeat("a", 2000)
	if _, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: long, UserName: "Sam"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	users := fix.messages.userRows()
	if got := len([]rune(users[0].Text)); got != maxMessageRunes {
		t.Errorf("stored text length = %d runes, want %d", got, maxMessageRunes)
	}
}

func TestPipelineConversationID(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("greeting hello", "GREETING", nil))

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "hi", UserName: "Sam", UserID: "user-42"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	users := fix.messages.userRows()
	if users[0].ConversationID != "user-42" {
		t.Errorf("conversationID = %q, want user-42", users[0].ConversationID)
	}

	// Without a user id the conversation falls back to the query id.
	resp, err = fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "hello there friend", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	users = fix.messages.userRows()
	if users[1].ConversationID != resp.QueryID {
		t.Errorf("conversationID = %q, want query id %q", users[1].ConversationID, resp.QueryID)
	}
}

func TestPipelineFAQMatch(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("wire poking cheek", "FAQ",
		func(req *CompletionRequest) (string, error) {
			if req.System == prompts.FAQSelectionSystemPrompt {
				return "1", nil
			}
			return "", fmt.Errorf("unexpected completion")
		}))
	fix.faqs.faqs = []domain.FAQ{
		{ID: 7, Intent: "wire poking cheek", Answer: "Cover the wire with orthodontic wax.", Embedding: domain.Vector{1, 0, 0}, MediaIDs: domain.Int64Array{2}},
	}
	fix.media.media = []domain.Media{
		{ID: 2, URL: "https://cdn.example.com/wax.png", Kind: domain.MediaKindGeneral},
	}

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "my wire is poking my cheek", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if resp.Text != "Cover the wire with orthodontic wax." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.FAQID == nil || *resp.FAQID != 7 {
		t.Errorf("faqID = %v, want 7", resp.FAQID)
	}
	if len(resp.MediaURLs) != 1 || resp.MediaURLs[0] != "https://cdn.example.com/wax.png" {
		t.Errorf("mediaURLs = %v", resp.MediaURLs)
	}
	if fix.embedder.callCount() != 1 {
		t.Errorf("embedding calls = %d, want 1", fix.embedder.callCount())
	}

	users := fix.messages.userRows()
	if users[0].ResolvedFAQID == nil || *users[0].ResolvedFAQID != 7 {
		t.Errorf("persisted faqID = %v, want 7", users[0].ResolvedFAQID)
	}
}

func TestPipelineFAQCacheRoundTrip(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("wire poking cheek", "FAQ",
		func(req *CompletionRequest) (string, error) {
			if req.System == prompts.FAQSelectionSystemPrompt {
				return "1", nil
			}
			return "", fmt.Errorf("unexpected completion")
		}))
	fix.faqs.faqs = []domain.FAQ{
		{ID: 7, Intent: "wire poking cheek", Answer: "Cover the wire with orthodontic wax.", Embedding: domain.Vector{1, 0, 0}},
	}

	req := &ChatRequest{Message: "my wire is poking my cheek", UserName: "Sam"}
	first, err := fix.pipeline.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("first Handle: %v", err)
	}
	routerCalls := countModelCalls(fix.llm, "router-primary")

	second, err := fix.pipeline.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("second Handle: %v", err)
	}

	if second.Text != first.Text {
		t.Errorf("second text = %q, want %q", second.Text, first.Text)
	}
	if second.FAQID == nil || *second.FAQID != 7 {
		t.Errorf("second faqID = %v, want 7", second.FAQID)
	}
	if fix.embedder.callCount() != 1 {
		t.Errorf("embedding calls = %d, want 1 (second run must hit the cache)", fix.embedder.callCount())
	}
	if got := countModelCalls(fix.llm, "router-primary"); got != routerCalls {
		t.Errorf("router calls grew from %d to %d on a cache hit", routerCalls, got)
	}
	if !containsEntry(second.PipelineLogs, "cache: hit") {
		t.Errorf("trace %v does not record the cache hit", second.PipelineLogs)
	}
}

func TestPipelineTrustsCachedNullFAQ(t *testing.T) {
	fix := newPipelineFixture(func(req *CompletionRequest) (string, error) {
		if req.System == prompts.FAQNoMatchSystemPrompt {
			return "I don't have specifics on that. Please check with your orthodontist.", nil
		}
		return "", fmt.Errorf("unexpected completion: %.40s", req.System)
	})

	// A prior run already searched and found nothing.
	seedDecision(t, fix.messages, "obscure braces question", "obscure intent", "FAQ", nil, PipelineVersion)

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "obscure braces question", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if fix.embedder.callCount() != 0 {
		t.Errorf("embedding calls = %d, want 0 (cached null must suppress the search)", fix.embedder.callCount())
	}
	if resp.FAQID != nil {
		t.Errorf("faqID = %v, want nil", resp.FAQID)
	}
	if !strings.Contains(resp.Text, "orthodontist") {
		t.Errorf("text = %q, want the no-match generation", resp.Text)
	}
}

func TestPipelineEducationAttachesDiagrams(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("what are braces", "EDUCATION",
		func(req *CompletionRequest) (string, error) {
			if req.System == prompts.EducationSystemPrompt {
				if req.User != "what are braces" {
					t.Errorf("education prompt user = %q, want the canonical intent", req.User)
				}
				return "Braces gently move teeth into place over time.", nil
			}
			return "", fmt.Errorf("unexpected completion")
		}))
	fix.media.media = []domain.Media{
		{ID: 1, URL: "https://cdn.example.com/braces-diagram.png", Kind: domain.MediaKindDiagram},
		{ID: 2, URL: "https://cdn.example.com/wax.png", Kind: domain.MediaKindGeneral},
	}

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "what are braces", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if resp.Text != "Braces gently move teeth into place over time." {
		t.Errorf("text = %q", resp.Text)
	}
	if len(resp.MediaURLs) != 1 || resp.MediaURLs[0] != "https://cdn.example.com/braces-diagram.png" {
		t.Errorf("mediaURLs = %v, want only the diagram", resp.MediaURLs)
	}
	if resp.FAQID != nil {
		t.Errorf("faqID = %v, want nil", resp.FAQID)
	}
}

func TestPipelineGeneralRoute(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("teeth whitening options", "GENERAL",
		func(req *CompletionRequest) (string, error) {
			if req.System == prompts.GeneralDentalSystemPrompt {
				return "Whitening is best discussed with your dentist first.", nil
			}
			return "", fmt.Errorf("unexpected completion")
		}))

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "how does teeth whitening work", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if resp.Text != "Whitening is best discussed with your dentist first." {
		t.Errorf("text = %q", resp.Text)
	}
	if len(resp.PipelineLogs) == 0 {
		t.Error("expected a populated trace with TraceInReply enabled")
	}
}

func TestPipelineOutageFallback(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		language string
	}{
		{"english", "my bracket just broke off", "english"},
		{"roman urdu", "mera daant dard kar raha hai", "roman-urdu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newPipelineFixture(func(req *CompletionRequest) (string, error) {
				return "", fmt.Errorf("backend down")
			})

			resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: tt.message, UserName: "Sam"})
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if resp.Text != prompts.SafeFallbacks[tt.language] {
				t.Errorf("text = %q, want %s safe fallback", resp.Text, tt.language)
			}

			// Total outage still resolves a route and persists the decision.
			users := fix.messages.userRows()
			if users[0].Route == nil || *users[0].Route != string(RouteEducation) {
				t.Errorf("persisted route = %v, want default %s", users[0].Route, RouteEducation)
			}
		})
	}
}

func TestPipelineBotRowLogged(t *testing.T) {
	fix := newPipelineFixture(scriptedHandler("wire poking cheek", "FAQ",
		func(req *CompletionRequest) (string, error) {
			if req.System == prompts.FAQSelectionSystemPrompt {
				return "1", nil
			}
			return "", fmt.Errorf("unexpected completion")
		}))
	fix.faqs.faqs = []domain.FAQ{
		{ID: 7, Intent: "wire poking cheek", Answer: "Cover the wire with orthodontic wax.", Embedding: domain.Vector{1, 0, 0}},
	}

	resp, err := fix.pipeline.Handle(context.Background(), &ChatRequest{Message: "wire poking", UserName: "Sam"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	bots := fix.messages.botRows()
	if len(bots) != 1 {
		t.Fatalf("bot rows = %d, want 1", len(bots))
	}
	if bots[0].Text != resp.Text {
		t.Errorf("bot row text = %q, want %q", bots[0].Text, resp.Text)
	}
}

func countModelCalls(llm *fakeLLM, model string) int {
	llm.mu.Lock()
	defer llm.mu.Unlock()
	n := 0
	for _, call := range llm.calls {
		if call.Model == model {
			n++
		}
	}
	return n
}

func containsEntry(entries []string, prefix string) bool {
	for _, e := range entries {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}
