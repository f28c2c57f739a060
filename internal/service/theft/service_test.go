package theft_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/repository/theft_stats_repo"
	"economy_backend/internal/service"
	"economy_backend/internal/service/theft"
)

type fixture struct {
	users *mocks.UserRepo
	serv  service.TheftService
}

func newFixture(overrides map[string]string, draws ...int) *fixture {
	users := mocks.NewUserRepo()
	serv := theft.NewTheftService(
		users,
		&mocks.BanRepo{Users: users},
		mocks.NewSettingsRepo(overrides),
		theft_stats_repo.NewTheftStatsRepository(),
		mocks.TxManager{},
		&mocks.ScriptedSource{Draws: draws},
	)
	return &fixture{users: users, serv: serv}
}

func TestAttemptTargetedSuccessZeroBalanceVictim(t *testing.T) {
	// Жертва с нулевым балансом: попытка состоится, украдено 0,
	// стоимость атаки списана и не возвращена
	f := newFixture(map[string]string{
		model.SettingTheftSuccessChance: "100",
		model.SettingTheftDefenseChance: "0",
		model.SettingMinTheftAmount:     "10",
		model.SettingMaxTheftAmount:     "10",
		model.SettingTargetedAttackCost: "50",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 0)

	res, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID:  1,
		Mode:     model.TheftModeTargeted,
		TargetID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TheftOutcomeSuccess, res.Kind)
	assert.Equal(t, 0, res.Amount)
	assert.Equal(t, 50, res.Cost)
	assert.Equal(t, 50, res.Balance)

	victimBalance, _ := f.users.GetBalance(context.Background(), 2)
	assert.Equal(t, 0, victimBalance)
}

func TestAttemptSuccessClampedToVictimBalance(t *testing.T) {
	// Украсть больше, чем есть у жертвы, нельзя
	f := newFixture(map[string]string{
		model.SettingTheftSuccessChance: "100",
		model.SettingTheftDefenseChance: "0",
		model.SettingMinTheftAmount:     "10",
		model.SettingMaxTheftAmount:     "10",
		model.SettingTargetedAttackCost: "0",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 4)

	res, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID:  1,
		Mode:     model.TheftModeTargeted,
		TargetID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TheftOutcomeSuccess, res.Kind)
	assert.Equal(t, 4, res.Amount)
	assert.Equal(t, 104, res.Balance)

	victimBalance, _ := f.users.GetBalance(context.Background(), 2)
	assert.Equal(t, 0, victimBalance)
}

func TestAttemptDefendedPaysPenaltyToVictim(t *testing.T) {
	f := newFixture(map[string]string{
		model.SettingTheftDefenseChance:  "100",
		model.SettingMinTheftAmount:      "20",
		model.SettingMaxTheftAmount:      "20",
		model.SettingTheftDefensePenalty: "10",
		model.SettingTargetedAttackCost:  "0",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 50)

	res, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID:  1,
		Mode:     model.TheftModeTargeted,
		TargetID: 2,
	})
	require.NoError(t, err)

	// Штраф: 10% от несостоявшейся добычи в 20
	assert.Equal(t, model.TheftOutcomeDefended, res.Kind)
	assert.Equal(t, 2, res.Penalty)
	assert.Equal(t, 98, res.Balance)

	victimBalance, _ := f.users.GetBalance(context.Background(), 2)
	assert.Equal(t, 52, victimBalance)

	victim, _ := f.users.GetUser(context.Background(), 2)
	assert.Equal(t, 1, victim.TheftProtected)
}

func TestAttemptCooldownNotConsumedOnRejection(t *testing.T) {
	// Отказы до фиксации не тратят попытку и не списывают стоимость
	f := newFixture(map[string]string{
		model.SettingTargetedAttackCost: "50",
	})
	f.users.Add(1, 10) // Меньше стоимости атаки
	f.users.Add(2, 100)

	_, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID:  1,
		Mode:     model.TheftModeTargeted,
		TargetID: 2,
	})
	require.ErrorIs(t, err, theft.ErrInsufficientFunds)

	last, _ := f.users.GetLastTheftTime(context.Background(), 1)
	assert.Nil(t, last, "cooldown must not be consumed")

	balance, _ := f.users.GetBalance(context.Background(), 1)
	assert.Equal(t, 10, balance, "attack cost must not be charged")
}

func TestAttemptRandomNoEligibleTarget(t *testing.T) {
	f := newFixture(map[string]string{
		model.SettingMinTheftAmount:   "5",
		model.SettingRandomAttackCost: "0",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 3) // Ниже min_theft_amount - не годится в жертвы

	_, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID: 1,
		Mode:    model.TheftModeRandom,
	})
	require.ErrorIs(t, err, theft.ErrNoEligibleTarget)

	last, _ := f.users.GetLastTheftTime(context.Background(), 1)
	assert.Nil(t, last, "cooldown must not be consumed")
}

func TestAttemptRandomPicksEligibleTarget(t *testing.T) {
	f := newFixture(map[string]string{
		model.SettingTheftSuccessChance: "100",
		model.SettingTheftDefenseChance: "0",
		model.SettingMinTheftAmount:     "10",
		model.SettingMaxTheftAmount:     "10",
		model.SettingRandomAttackCost:   "0",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 50) // Единственный годный кандидат
	f.users.Add(3, 2)

	res, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID: 1,
		Mode:    model.TheftModeRandom,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.TargetID)
	assert.Equal(t, 10, res.Amount)
}

func TestAttemptCooldownActive(t *testing.T) {
	f := newFixture(map[string]string{
		model.SettingTheftSuccessChance: "100",
		model.SettingTheftDefenseChance: "0",
		model.SettingTargetedAttackCost: "0",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 100)

	ctx := context.Background()
	attempt := model.TheftAttempt{ActorID: 1, Mode: model.TheftModeTargeted, TargetID: 2}

	_, err := f.serv.Attempt(ctx, attempt)
	require.NoError(t, err)

	_, err = f.serv.Attempt(ctx, attempt)
	require.ErrorIs(t, err, theft.ErrCooldownActive)

	var cdErr *theft.CooldownError
	require.True(t, errors.As(err, &cdErr))
	assert.Greater(t, cdErr.Remaining, time.Duration(0))

	state, err := f.serv.Cooldown(ctx, 1)
	require.NoError(t, err)
	assert.False(t, state.Ready)
}

func TestAttemptValidation(t *testing.T) {
	f := newFixture(nil)
	f.users.Add(1, 100)
	f.users.Add(2, 100)
	f.users.Add(3, 100)
	f.users.Banned[3] = true

	ctx := context.Background()

	t.Run("self target", func(t *testing.T) {
		_, err := f.serv.Attempt(ctx, model.TheftAttempt{ActorID: 1, Mode: model.TheftModeTargeted, TargetID: 1})
		assert.ErrorIs(t, err, theft.ErrSelfTarget)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := f.serv.Attempt(ctx, model.TheftAttempt{ActorID: 1, Mode: model.TheftModeTargeted, TargetID: 99})
		assert.ErrorIs(t, err, theft.ErrUnknownTarget)
	})

	t.Run("banned target", func(t *testing.T) {
		_, err := f.serv.Attempt(ctx, model.TheftAttempt{ActorID: 1, Mode: model.TheftModeTargeted, TargetID: 3})
		assert.ErrorIs(t, err, theft.ErrTargetBanned)
	})

	t.Run("banned actor", func(t *testing.T) {
		_, err := f.serv.Attempt(ctx, model.TheftAttempt{ActorID: 3, Mode: model.TheftModeTargeted, TargetID: 1})
		assert.ErrorIs(t, err, theft.ErrBanned)
	})
}

func TestAttemptRecordsRoundStats(t *testing.T) {
	f := newFixture(map[string]string{
		model.SettingTheftSuccessChance: "100",
		model.SettingTheftDefenseChance: "0",
		model.SettingMinTheftAmount:     "10",
		model.SettingMaxTheftAmount:     "10",
		model.SettingTargetedAttackCost: "0",
	})
	f.users.Add(1, 100)
	f.users.Add(2, 100)

	_, err := f.serv.Attempt(context.Background(), model.TheftAttempt{
		ActorID:  1,
		Mode:     model.TheftModeTargeted,
		TargetID: 2,
	})
	require.NoError(t, err)

	stats := f.serv.RoundStats()
	assert.Equal(t, 1, stats.TotalRounds)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 10, stats.TotalStolen)
}
