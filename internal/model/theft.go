package model

import "time"

// Режим выбора жертвы
type TheftMode string

const (
	// TheftModeRandom - случайная жертва
	TheftModeRandom TheftMode = "random"
	// TheftModeTargeted - жертва по конкретному ID
	TheftModeTargeted TheftMode = "targeted"
)

type TheftAttempt struct {
	ActorID  int64
	Mode     TheftMode
	TargetID int64 // Используется только при TheftModeTargeted
}

// Исход попытки ограбления. Ровно один из трех вариантов
type TheftOutcomeKind string

const (
	// Жертва защитилась, грабитель платит штраф
	TheftOutcomeDefended TheftOutcomeKind = "defended"
	// Ограбление удалось
	TheftOutcomeSuccess TheftOutcomeKind = "success"
	// Не защитилась, но и не удалось
	TheftOutcomeFailed TheftOutcomeKind = "failed"
)

type TheftResult struct {
	Kind     TheftOutcomeKind
	TargetID int64
	Amount   int // Украденная сумма при success
	Penalty  int // Уплаченный штраф при defended
	Cost     int // Списанная стоимость атаки
	Balance  int // Баланс грабителя после
}

// CooldownState - ответ на запрос готовности к следующему ограблению
type CooldownState struct {
	Ready     bool
	Remaining time.Duration
}

// TheftStatsDelta - приращения счетчиков пользователя, все неотрицательные
type TheftStatsDelta struct {
	Attempts  int
	Success   int
	Failed    int
	Protected int
	Losses    int
}

// TheftRoundStats - сводная статистика раундов за время жизни процесса
type TheftRoundStats struct {
	TotalRounds    int
	Defended       int
	Succeeded      int
	Failed         int
	TotalStolen    int
	TotalPenalties int
}
