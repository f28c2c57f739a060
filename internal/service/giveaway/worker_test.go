package giveaway_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service/giveaway"
)

func TestWorkerDrawsExpiredGiveaways(t *testing.T) {
	repo := mocks.NewGiveawayRepo()
	serv := newService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Просроченный активный розыгрыш создается напрямую в хранилище:
	// сервис не позволяет создать розыгрыш с датой в прошлом
	expiredID, err := repo.Create(ctx, &model.Giveaway{
		Prize:        "VIP",
		EndDate:      time.Now().Add(-time.Minute),
		Status:       model.GiveawayStatusActive,
		WinnersCount: 1,
	})
	require.NoError(t, err)
	_, err = repo.AddParticipant(ctx, 10, expiredID)
	require.NoError(t, err)

	// Еще не истекший не трогается
	freshID := createActive(t, serv, 1)

	worker := giveaway.NewWorker(serv, repo, 10*time.Millisecond)
	go worker.Start(ctx)

	require.Eventually(t, func() bool {
		g, err := repo.Get(ctx, expiredID)
		return err == nil && g.Status == model.GiveawayStatusCompleted
	}, time.Second, 10*time.Millisecond)

	fresh, err := repo.Get(ctx, freshID)
	require.NoError(t, err)
	assert.Equal(t, model.GiveawayStatusActive, fresh.Status)

	expired, err := repo.Get(ctx, expiredID)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, expired.Winners)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	repo := mocks.NewGiveawayRepo()
	serv := newService(repo)
	ctx, cancel := context.WithCancel(context.Background())

	worker := giveaway.NewWorker(serv, repo, 10*time.Millisecond)
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Отмена контекста приложения останавливает цикл воркера
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}

func TestWorkerToleratesEmptyExpiredGiveaway(t *testing.T) {
	repo := mocks.NewGiveawayRepo()
	serv := newService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emptyID, err := repo.Create(ctx, &model.Giveaway{
		Prize:        "VIP",
		EndDate:      time.Now().Add(-time.Minute),
		Status:       model.GiveawayStatusActive,
		WinnersCount: 2,
	})
	require.NoError(t, err)

	worker := giveaway.NewWorker(serv, repo, 10*time.Millisecond)
	go worker.Start(ctx)

	require.Eventually(t, func() bool {
		g, err := repo.Get(ctx, emptyID)
		return err == nil && g.Status == model.GiveawayStatusCompleted
	}, time.Second, 10*time.Millisecond)

	g, err := repo.Get(ctx, emptyID)
	require.NoError(t, err)
	assert.Empty(t, g.Winners)
}
