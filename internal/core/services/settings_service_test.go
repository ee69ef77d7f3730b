package services

import (
	"context"
	"testing"

	"umoja-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)
	ctx := context.Background()

	_, err := svc.SetSetting(ctx, "loan_limit_multiplier", "3")
	require.NoError(t, err)

	setting, err := svc.GetSetting(ctx, "loan_limit_multiplier")
	require.NoError(t, err)
	assert.Equal(t, "3", setting.Value)

	// Setting the same key again updates in place
	_, err = svc.SetSetting(ctx, "loan_limit_multiplier", "4")
	require.NoError(t, err)

	setting, err = svc.GetSetting(ctx, "loan_limit_multiplier")
	require.NoError(t, err)
	assert.Equal(t, "4", setting.Value)
}

func TestGetSettingMissingKey(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	_, err := svc.GetSetting(context.Background(), "no_such_key")
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)
}

func TestCreateBackupRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSettingsService(db)

	backup, err := svc.CreateBackup(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "full", backup.BackupType)
	assert.Equal(t, "completed", backup.Status)
	assert.Contains(t, backup.Location, "umoja_sacco_")
}
