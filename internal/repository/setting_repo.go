package repository

import (
	"context"
	"errors"

	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"gorm.io/gorm"
)

// SettingRepository reads key/value settings.
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SettingRepository: repository instance bound to db.
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for key, or "" when the row does not exist.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - key: setting key.
// Returns:
//   - string: stored value, empty when absent.
//   - error: non-nil if the lookup fails for reasons other than absence.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var s domain.Setting
	if err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

// Set upserts a setting row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - key: setting key.
//   - value: setting value.
// Returns:
//   - error: non-nil if the write fails.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	s := domain.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Save(&s).Error
}
