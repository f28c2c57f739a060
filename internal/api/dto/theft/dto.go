package theft

type AttemptRequest struct {
	ActorID  int64  `json:"actor_id"`            // Кто грабит
	Mode     string `json:"mode"`                // random или targeted
	TargetID int64  `json:"target_id,omitempty"` // Жертва при targeted
}

type AttemptResponse struct {
	Outcome  string `json:"outcome"`   // defended, success или failed
	TargetID int64  `json:"target_id"` // Жертва
	Amount   int    `json:"amount"`    // Украдено при success
	Penalty  int    `json:"penalty"`   // Штраф при defended
	Cost     int    `json:"cost"`      // Списанная стоимость атаки
	Balance  int    `json:"balance"`   // Баланс грабителя после
}

type CooldownResponse struct {
	Ready            bool  `json:"ready"`             // Можно ли грабить
	RemainingSeconds int64 `json:"remaining_seconds"` // Секунд до готовности
}

type RoundStatsResponse struct {
	TotalRounds    int `json:"total_rounds"`
	Defended       int `json:"defended"`
	Succeeded      int `json:"succeeded"`
	Failed         int `json:"failed"`
	TotalStolen    int `json:"total_stolen"`
	TotalPenalties int `json:"total_penalties"`
}
