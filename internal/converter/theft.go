package converter

import (
	"economy_backend/internal/api/dto/theft"
	"economy_backend/internal/model"
)

func ToTheftAttempt(req theft.AttemptRequest) model.TheftAttempt {
	return model.TheftAttempt{
		ActorID:  req.ActorID,
		Mode:     model.TheftMode(req.Mode),
		TargetID: req.TargetID,
	}
}

func ToTheftAttemptResponse(res model.TheftResult) theft.AttemptResponse {
	return theft.AttemptResponse{
		Outcome:  string(res.Kind),
		TargetID: res.TargetID,
		Amount:   res.Amount,
		Penalty:  res.Penalty,
		Cost:     res.Cost,
		Balance:  res.Balance,
	}
}

func ToCooldownResponse(state model.CooldownState) theft.CooldownResponse {
	return theft.CooldownResponse{
		Ready:            state.Ready,
		RemainingSeconds: int64(state.Remaining.Seconds()),
	}
}

func ToRoundStatsResponse(stats model.TheftRoundStats) theft.RoundStatsResponse {
	return theft.RoundStatsResponse{
		TotalRounds:    stats.TotalRounds,
		Defended:       stats.Defended,
		Succeeded:      stats.Succeeded,
		Failed:         stats.Failed,
		TotalStolen:    stats.TotalStolen,
		TotalPenalties: stats.TotalPenalties,
	}
}
