package casino_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service/casino"
)

func TestPlayWin(t *testing.T) {
	users := mocks.NewUserRepo()
	users.Add(1, 100)

	serv := casino.NewCasinoService(
		users,
		mocks.NewSettingsRepo(map[string]string{model.SettingCasinoWinChance: "100"}),
		mocks.TxManager{},
		&mocks.ScriptedSource{},
	)

	res, err := serv.Play(context.Background(), model.CasinoRound{UserID: 1, Stake: 30})
	require.NoError(t, err)

	// Списана ставка, начислено 2x: чистый выигрыш равен ставке
	assert.True(t, res.Win)
	assert.Equal(t, 60, res.Payout)
	assert.Equal(t, 130, res.Balance)
}

func TestPlayLoss(t *testing.T) {
	users := mocks.NewUserRepo()
	users.Add(1, 100)

	serv := casino.NewCasinoService(
		users,
		mocks.NewSettingsRepo(map[string]string{model.SettingCasinoWinChance: "0"}),
		mocks.TxManager{},
		&mocks.ScriptedSource{},
	)

	res, err := serv.Play(context.Background(), model.CasinoRound{UserID: 1, Stake: 30})
	require.NoError(t, err)

	assert.False(t, res.Win)
	assert.Equal(t, 0, res.Payout)
	assert.Equal(t, 70, res.Balance)
}

func TestPlayRejections(t *testing.T) {
	users := mocks.NewUserRepo()
	users.Add(1, 10)

	serv := casino.NewCasinoService(
		users,
		mocks.NewSettingsRepo(nil),
		mocks.TxManager{},
		&mocks.ScriptedSource{},
	)

	ctx := context.Background()

	_, err := serv.Play(ctx, model.CasinoRound{UserID: 1, Stake: 0})
	assert.ErrorIs(t, err, casino.ErrBadStake)

	_, err = serv.Play(ctx, model.CasinoRound{UserID: 1, Stake: -5})
	assert.ErrorIs(t, err, casino.ErrBadStake)

	_, err = serv.Play(ctx, model.CasinoRound{UserID: 1, Stake: 50})
	assert.ErrorIs(t, err, casino.ErrInsufficientFunds)

	// Отказ не тронул баланс
	balance, _ := users.GetBalance(ctx, 1)
	assert.Equal(t, 10, balance)
}
