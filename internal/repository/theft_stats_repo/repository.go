package theft_stats_repo

import (
	"sync"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
)

// Процессная статистика раундов ограблений.
// Хранится в памяти, после рестарта начинается заново
type StatsRepo struct {
	mtx   sync.RWMutex
	stats model.TheftRoundStats
}

func NewTheftStatsRepository() repository.TheftStatsRepository {
	return &StatsRepo{}
}

// RecordRound - учет завершенного раунда.
// amount - украденная сумма при success, штраф при defended
func (r *StatsRepo) RecordRound(kind model.TheftOutcomeKind, amount int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.stats.TotalRounds++
	switch kind {
	case model.TheftOutcomeDefended:
		r.stats.Defended++
		r.stats.TotalPenalties += amount
	case model.TheftOutcomeSuccess:
		r.stats.Succeeded++
		r.stats.TotalStolen += amount
	case model.TheftOutcomeFailed:
		r.stats.Failed++
	}
}

// Stats - копия текущей статистики
func (r *StatsRepo) Stats() model.TheftRoundStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.stats
}
