package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"umoja-sacco/internal/adapters/persistence/models"
	"umoja-sacco/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsService handles key-value settings and backup records
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSetting returns the setting for a key
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).
		Where("setting_key = ?", key).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// SetSetting upserts a key-value pair
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) (*models.Setting, error) {
	setting := &models.Setting{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// CreateBackup records a completed backup run. The actual dump is
// taken by infrastructure outside this process; this row is the
// bookkeeping entry operators check.
func (s *SettingsService) CreateBackup(ctx context.Context, backupType string) (*models.Backup, error) {
	if backupType == "" {
		backupType = "full"
	}
	backup := &models.Backup{
		BackupType: backupType,
		Location:   fmt.Sprintf("backups/umoja_sacco_%s.sql.gz", time.Now().Format("20060102_150405")),
		Status:     "completed",
	}
	if err := s.db.WithContext(ctx).Create(backup).Error; err != nil {
		return nil, err
	}
	return backup, nil
}
