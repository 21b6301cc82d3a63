package repository

import (
	"context"
	"errors"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"gorm.io/gorm"
)

// FAQRepository reads the FAQ library. The matching core never writes FAQs;
// only the re-embedding job updates the embedding column.
type FAQRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates a new FAQRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *FAQRepository: repository instance bound to db.
func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// List returns all FAQs with their precomputed embeddings.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.FAQ: all FAQ rows.
//   - error: non-nil if the query fails.
func (r *FAQRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	if err := r.db.WithContext(ctx).Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// GetByID retrieves a FAQ by its id.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: FAQ id.
// Returns:
//   - *domain.FAQ: FAQ row, or nil when not found.
//   - error: non-nil if the lookup fails.
func (r *FAQRepository) GetByID(ctx context.Context, id int64) (*domain.FAQ, error) {
	var faq domain.FAQ
	if err := r.db.WithContext(ctx).First(&faq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &faq, nil
}

// UpdateEmbedding replaces the stored embedding for a FAQ. Used only by the
// re-embedding job after an intent change.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: FAQ id.
//   - embedding: new embedding vector for the FAQ's intent.
// Returns:
//   - error: non-nil if the update fails.
func (r *FAQRepository) UpdateEmbedding(ctx context.Context, id int64, embedding domain.Vector) error {
	return r.db.WithContext(ctx).
		Model(&domain.FAQ{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}
