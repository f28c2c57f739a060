package giveaway_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service"
	"economy_backend/internal/service/giveaway"
)

func newService(repo *mocks.GiveawayRepo) service.GiveawayService {
	return giveaway.NewGiveawayService(repo, mocks.TxManager{}, &mocks.ScriptedSource{})
}

func createActive(t *testing.T, serv service.GiveawayService, winnersCount int) int64 {
	t.Helper()
	id, err := serv.Create(context.Background(), &model.Giveaway{
		Prize:        "VIP",
		EndDate:      time.Now().Add(time.Hour),
		WinnersCount: winnersCount,
	})
	require.NoError(t, err)
	return id
}

func TestCreateValidation(t *testing.T) {
	serv := newService(mocks.NewGiveawayRepo())
	ctx := context.Background()

	_, err := serv.Create(ctx, &model.Giveaway{
		Prize:        "VIP",
		EndDate:      time.Now().Add(time.Hour),
		WinnersCount: 0,
	})
	assert.ErrorIs(t, err, giveaway.ErrBadGiveaway)

	_, err = serv.Create(ctx, &model.Giveaway{
		Prize:        "VIP",
		EndDate:      time.Now().Add(-time.Hour),
		WinnersCount: 1,
	})
	assert.ErrorIs(t, err, giveaway.ErrBadGiveaway)
}

func TestEnroll(t *testing.T) {
	serv := newService(mocks.NewGiveawayRepo())
	ctx := context.Background()

	id := createActive(t, serv, 1)

	require.NoError(t, serv.Enroll(ctx, 10, id))

	err := serv.Enroll(ctx, 10, id)
	assert.ErrorIs(t, err, giveaway.ErrAlreadyEnrolled)

	err = serv.Enroll(ctx, 10, 999)
	assert.ErrorIs(t, err, giveaway.ErrUnknownGiveaway)
}

func TestDrawPicksDistinctWinners(t *testing.T) {
	repo := mocks.NewGiveawayRepo()
	serv := newService(repo)
	ctx := context.Background()

	id := createActive(t, serv, 2)
	for _, userID := range []int64{10, 20, 30, 40} {
		require.NoError(t, serv.Enroll(ctx, userID, id))
	}

	res, err := serv.Draw(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Participants)
	require.Len(t, res.Winners, 2)
	assert.NotEqual(t, res.Winners[0], res.Winners[1])

	stored, err := serv.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.GiveawayStatusCompleted, stored.Status)
	assert.Equal(t, res.Winners, stored.Winners)
}

func TestDrawMoreSeatsThanParticipants(t *testing.T) {
	serv := newService(mocks.NewGiveawayRepo())
	ctx := context.Background()

	id := createActive(t, serv, 5)
	require.NoError(t, serv.Enroll(ctx, 10, id))
	require.NoError(t, serv.Enroll(ctx, 20, id))

	res, err := serv.Draw(ctx, id)
	require.NoError(t, err)

	// Мест больше, чем участников - выигрывают все
	assert.ElementsMatch(t, []int64{10, 20}, res.Winners)
}

func TestDrawIdempotent(t *testing.T) {
	serv := newService(mocks.NewGiveawayRepo())
	ctx := context.Background()

	id := createActive(t, serv, 1)
	require.NoError(t, serv.Enroll(ctx, 10, id))

	first, err := serv.Draw(ctx, id)
	require.NoError(t, err)

	// Повторный розыгрыш не перерисовывает победителей
	_, err = serv.Draw(ctx, id)
	assert.ErrorIs(t, err, giveaway.ErrAlreadyDrawn)

	stored, err := serv.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.Winners, stored.Winners)
}

func TestDrawEmptyGiveaway(t *testing.T) {
	serv := newService(mocks.NewGiveawayRepo())
	ctx := context.Background()

	id := createActive(t, serv, 3)

	res, err := serv.Draw(ctx, id)
	require.ErrorIs(t, err, giveaway.ErrNoParticipants)

	// Розыгрыш завершен с пустым списком победителей
	require.NotNil(t, res)
	assert.Empty(t, res.Winners)

	stored, getErr := serv.Get(ctx, id)
	require.NoError(t, getErr)
	assert.Equal(t, model.GiveawayStatusCompleted, stored.Status)
}

// staleGetRepo на первое чтение отдает устаревший активный снимок,
// моделируя завершение розыгрыша между проверкой статуса и вставкой
type staleGetRepo struct {
	*mocks.GiveawayRepo
	stale *model.Giveaway
	used  bool
}

func (r *staleGetRepo) Get(ctx context.Context, id int64) (*model.Giveaway, error) {
	if !r.used {
		r.used = true
		copied := *r.stale
		return &copied, nil
	}
	return r.GiveawayRepo.Get(ctx, id)
}

func TestEnrollWhileCompletionInProgress(t *testing.T) {
	base := mocks.NewGiveawayRepo()
	serv := newService(base)
	ctx := context.Background()

	id := createActive(t, serv, 1)
	stale, err := base.Get(ctx, id)
	require.NoError(t, err)

	require.NoError(t, serv.Enroll(ctx, 10, id))
	_, err = serv.Draw(ctx, id)
	require.NoError(t, err)

	// Заявка прочитала еще активный статус, но розыгрыш завершился
	// до вставки: вставка отклоняется и заявка получает ErrNotActive
	raced := giveaway.NewGiveawayService(
		&staleGetRepo{GiveawayRepo: base, stale: stale},
		mocks.TxManager{}, &mocks.ScriptedSource{},
	)
	err = raced.Enroll(ctx, 20, id)
	assert.ErrorIs(t, err, giveaway.ErrNotActive)

	ids, err := base.ListParticipants(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, ids, int64(20))
}

func TestEnrollAfterDraw(t *testing.T) {
	serv := newService(mocks.NewGiveawayRepo())
	ctx := context.Background()

	id := createActive(t, serv, 1)
	require.NoError(t, serv.Enroll(ctx, 10, id))

	_, err := serv.Draw(ctx, id)
	require.NoError(t, err)

	err = serv.Enroll(ctx, 20, id)
	assert.ErrorIs(t, err, giveaway.ErrNotActive)
}
