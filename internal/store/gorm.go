package store

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"finanzas/internal/models"
)

// GormStore keeps documents in the user_documents table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get loads and decodes the user's document.
func (s *GormStore) Get(ctx context.Context, userID string) (map[string]any, error) {
	var row models.UserDocument
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode([]byte(row.Data))
}

// Merge applies fields inside a transaction and bumps the row version.
func (s *GormStore) Merge(ctx context.Context, userID string, fields map[string]any) error {
	normalized, err := normalizeFields(fields)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.UserDocument
		err := tx.Where("user_id = ?", userID).First(&row).Error
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		doc, err := decode([]byte(row.Data))
		if err != nil {
			return err
		}
		if err := applyFields(doc, normalized); err != nil {
			return err
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		if !exists {
			return tx.Create(&models.UserDocument{UserID: userID, Data: string(data), Version: 1}).Error
		}
		return tx.Model(&models.UserDocument{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"data":    string(data),
				"version": gorm.Expr("version + 1"),
			}).Error
	})
}

// Version returns the number of merge-writes applied to the user's document.
func (s *GormStore) Version(ctx context.Context, userID string) (int64, error) {
	var row models.UserDocument
	if err := s.db.WithContext(ctx).Select("version").Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return row.Version, nil
}
