package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	value, err := repos.Setting.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, repos.Setting.SetSetting(ctx, "gpt_model", "gpt-4.1"))
	require.NoError(t, repos.Setting.SetSetting(ctx, "gpt_model", "gpt-4o"))

	value, err = repos.Setting.GetSetting(ctx, "gpt_model")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", value)

	require.NoError(t, repos.Setting.SeedSettings(ctx, map[string]string{
		"gpt_model":   "gpt-3.5-turbo", // already set, must be kept
		"max_retries": "3",
	}))

	all, err := repos.Setting.GetAllSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"gpt_model": "gpt-4o", "max_retries": "3"}, all)
}
