package converter

import (
	"economy_backend/internal/api/dto/casino"
	"economy_backend/internal/model"
)

func ToCasinoRound(req casino.PlayRequest) model.CasinoRound {
	return model.CasinoRound{
		UserID: req.UserID,
		Stake:  req.Stake,
	}
}

func ToCasinoPlayResponse(res model.CasinoResult) casino.PlayResponse {
	return casino.PlayResponse{
		Win:     res.Win,
		Payout:  res.Payout,
		Balance: res.Balance,
	}
}
