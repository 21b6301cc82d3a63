package repository

import (
	"context"
	"errors"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository handles chat message persistence. User rows also serve as
// the backing store for the decision cache.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MessageRepository: repository instance bound to db.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - msg: message record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// LatestDecision returns the most recently created user message whose raw
// text is byte-identical to text, whose pipeline version matches, and whose
// route is non-null (a completed pipeline run). Text comparison is exact and
// case-sensitive; that behavior is pinned by tests.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - text: raw message text to match.
//   - pipelineVersion: classification logic version the cached row must carry.
// Returns:
//   - *domain.Message: the matching row, or nil when none exists.
//   - error: non-nil if the lookup fails.
func (r *MessageRepository) LatestDecision(ctx context.Context, text string, pipelineVersion int) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.WithContext(ctx).
		Where("sender = ? AND text = ? AND pipeline_version = ? AND route IS NOT NULL",
			domain.SenderUser, text, pipelineVersion).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// SaveDecision writes the computed classification onto the triggering user
// message row, addressed by explicit row id rather than by creation order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: message row id created when the user turn was logged.
//   - intent: canonical intent phrase.
//   - route: resolved route label.
//   - faqID: resolved FAQ id; nil is a meaningful "searched, no match".
//   - pipelineVersion: classification logic version.
// Returns:
//   - error: non-nil if the update fails.
func (r *MessageRepository) SaveDecision(ctx context.Context, id uint, intent, route string, faqID *int64, pipelineVersion int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ? AND sender = ?", id, domain.SenderUser).
		Updates(map[string]interface{}{
			"canonical_intent": intent,
			"route":            route,
			"resolved_faq_id":  faqID,
			"pipeline_version": pipelineVersion,
		}).Error
}

// ListByConversation returns messages for a conversation ordered by creation time.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - conversationID: conversation to list.
//   - limit: maximum rows to return; 0 means no limit.
// Returns:
//   - []domain.Message: ordered messages.
//   - error: non-nil if the query fails.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	var msgs []domain.Message
	q := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}
