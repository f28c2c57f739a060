package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service"
	"economy_backend/internal/service/admin"
)

func newService() (service.AdminService, *mocks.UserRepo) {
	users := mocks.NewUserRepo()
	serv := admin.NewAdminService(mocks.NewSettingsRepo(nil), &mocks.BanRepo{Users: users})
	return serv, users
}

func TestSettings(t *testing.T) {
	serv, _ := newService()
	ctx := context.Background()

	// Значение по умолчанию до первой записи
	value, err := serv.GetSetting(ctx, model.SettingCasinoWinChance)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings[model.SettingCasinoWinChance], value)

	require.NoError(t, serv.SetSetting(ctx, model.SettingCasinoWinChance, "45"))

	value, err = serv.GetSetting(ctx, model.SettingCasinoWinChance)
	require.NoError(t, err)
	assert.Equal(t, "45", value)

	all, err := serv.AllSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(model.SettingKeys))
}

func TestSettingsValidation(t *testing.T) {
	serv, _ := newService()
	ctx := context.Background()

	_, err := serv.GetSetting(ctx, "nope")
	assert.ErrorIs(t, err, admin.ErrUnknownSetting)

	err = serv.SetSetting(ctx, "nope", "1")
	assert.ErrorIs(t, err, admin.ErrUnknownSetting)

	err = serv.SetSetting(ctx, model.SettingCasinoWinChance, "abc")
	assert.ErrorIs(t, err, admin.ErrBadValue)

	err = serv.SetSetting(ctx, model.SettingCasinoWinChance, "-1")
	assert.ErrorIs(t, err, admin.ErrBadValue)
}

func TestBans(t *testing.T) {
	serv, users := newService()
	ctx := context.Background()

	require.NoError(t, serv.Ban(ctx, &model.BanEntry{UserID: 7, BannedBy: 1, Reason: "spam"}))
	assert.True(t, users.Banned[7])

	bans, err := serv.ListBans(ctx)
	require.NoError(t, err)
	assert.Len(t, bans, 1)

	require.NoError(t, serv.Unban(ctx, 7))
	assert.False(t, users.Banned[7])

	err = serv.Unban(ctx, 7)
	assert.ErrorIs(t, err, admin.ErrNotBanned)
}
