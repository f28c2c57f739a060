package theft_stats_repo_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/theft_stats_repo"
)

func TestRecordRound(t *testing.T) {
	repo := theft_stats_repo.NewTheftStatsRepository()

	repo.RecordRound(model.TheftOutcomeSuccess, 15)
	repo.RecordRound(model.TheftOutcomeSuccess, 5)
	repo.RecordRound(model.TheftOutcomeDefended, 3)
	repo.RecordRound(model.TheftOutcomeFailed, 0)

	stats := repo.Stats()
	assert.Equal(t, 4, stats.TotalRounds)
	assert.Equal(t, 2, stats.Succeeded)
	assert.Equal(t, 1, stats.Defended)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 20, stats.TotalStolen)
	assert.Equal(t, 3, stats.TotalPenalties)
}

func TestRecordRoundConcurrent(t *testing.T) {
	repo := theft_stats_repo.NewTheftStatsRepository()

	const workers = 10
	const rounds = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				repo.RecordRound(model.TheftOutcomeSuccess, 1)
			}
		}()
	}
	wg.Wait()

	stats := repo.Stats()
	assert.Equal(t, workers*rounds, stats.TotalRounds)
	assert.Equal(t, workers*rounds, stats.TotalStolen)
}
