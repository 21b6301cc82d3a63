package repository

import (
	"context"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"gorm.io/gorm"
)

// MediaRepository reads media records for answer attachments.
type MediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new MediaRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MediaRepository: repository instance bound to db.
func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// ListByIDs returns media rows for the given ids, preserving the input order.
// Missing ids are skipped silently.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - ids: ordered media ids.
// Returns:
//   - []domain.Media: media rows in id-list order.
//   - error: non-nil if the query fails.
func (r *MediaRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Media, error) {
	if len(ids) == 0 {
		return []domain.Media{}, nil
	}
	var rows []domain.Media
	if err := r.db.WithContext(ctx).Where("id IN ?", []int64(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Media, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	ordered := make([]domain.Media, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

// List returns the full media library.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Media: all media rows.
//   - error: non-nil if the query fails.
func (r *MediaRepository) List(ctx context.Context) ([]domain.Media, error) {
	var rows []domain.Media
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDiagrams returns all diagram media attached to education answers.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Media: diagram media rows.
//   - error: non-nil if the query fails.
func (r *MediaRepository) ListDiagrams(ctx context.Context) ([]domain.Media, error) {
	var rows []domain.Media
	if err := r.db.WithContext(ctx).
		Where("kind = ?", domain.MediaKindDiagram).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
