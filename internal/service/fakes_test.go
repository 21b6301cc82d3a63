package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
)

// fakeLLM scripts the completion backend. The handler sees every request, so
// tests can dispatch on the system prompt or model.
type fakeLLM struct {
	mu      sync.Mutex
	handler func(req *CompletionRequest) (string, error)
	calls   []*CompletionRequest
}

func (f *fakeLLM) Complete(_ context.Context, req *CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.handler == nil {
		return "", fmt.Errorf("no handler configured")
	}
	return f.handler(req)
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeEmbedder returns a fixed vector and counts calls.
type fakeEmbedder struct {
	mu    sync.Mutex
	vec   []float32
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memMessages is an in-memory MessageStore.
type memMessages struct {
	mu        sync.Mutex
	rows      []*domain.Message
	nextID    uint
	createErr error
	saveErr   error
	readErr   error
}

func newMemMessages() *memMessages {
	return &memMessages{nextID: 1}
}

func (m *memMessages) Create(_ context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	msg.ID = m.nextID
	m.nextID++
	stored := *msg
	m.rows = append(m.rows, &stored)
	return nil
}

func (m *memMessages) LatestDecision(_ context.Context, text string, pipelineVersion int) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	for i := len(m.rows) - 1; i >= 0; i-- {
		row := m.rows[i]
		if row.Sender != domain.SenderUser || row.Text != text {
			continue
		}
		if row.Route == nil || row.PipelineVersion == nil || *row.PipelineVersion != pipelineVersion {
			continue
		}
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (m *memMessages) SaveDecision(_ context.Context, id uint, intent, route string, faqID *int64, pipelineVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, row := range m.rows {
		if row.ID == id {
			row.CanonicalIntent = &intent
			row.Route = &route
			row.ResolvedFAQID = faqID
			row.PipelineVersion = &pipelineVersion
			return nil
		}
	}
	return fmt.Errorf("message %d not found", id)
}

// userRows returns the stored user messages in insertion order.
func (m *memMessages) userRows() []*domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for _, row := range m.rows {
		if row.Sender == domain.SenderUser {
			out = append(out, row)
		}
	}
	return out
}

// botRows returns the stored bot messages in insertion order.
func (m *memMessages) botRows() []*domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for _, row := range m.rows {
		if row.Sender == domain.SenderBot {
			out = append(out, row)
		}
	}
	return out
}

// memFAQs is an in-memory FAQStore.
type memFAQs struct {
	faqs    []domain.FAQ
	listErr error
}

func (m *memFAQs) List(_ context.Context) ([]domain.FAQ, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.faqs, nil
}

func (m *memFAQs) GetByID(_ context.Context, id int64) (*domain.FAQ, error) {
	for _, faq := range m.faqs {
		if faq.ID == id {
			copied := faq
			return &copied, nil
		}
	}
	return nil, nil
}

// memMedia is an in-memory MediaStore.
type memMedia struct {
	media []domain.Media
}

func (m *memMedia) List(_ context.Context) ([]domain.Media, error) {
	return m.media, nil
}

func (m *memMedia) ListByIDs(_ context.Context, ids []int64) ([]domain.Media, error) {
	var out []domain.Media
	for _, id := range ids {
		for _, item := range m.media {
			if item.ID == id {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func (m *memMedia) ListDiagrams(_ context.Context) ([]domain.Media, error) {
	var out []domain.Media
	for _, item := range m.media {
		if item.Kind == domain.MediaKindDiagram {
			out = append(out, item)
		}
	}
	return out, nil
}

// memSettings is an in-memory SettingStore.
type memSettings struct {
	values map[string]string
	err    error
}

func (m *memSettings) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.values[key], nil
}
