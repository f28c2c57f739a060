package converter

import (
	"economy_backend/internal/api/dto/promo"
	"economy_backend/internal/model"
)

func ToPromoCode(req promo.CreateRequest) model.PromoCode {
	return model.PromoCode{
		Code:    req.Code,
		Reward:  req.Reward,
		MaxUses: req.MaxUses,
	}
}

func ToPromoRedeemResponse(res model.PromoResult) promo.RedeemResponse {
	return promo.RedeemResponse{
		Reward:  res.Reward,
		Balance: res.Balance,
	}
}

func ToPromoResponses(codes []model.PromoCode) []promo.PromoResponse {
	result := make([]promo.PromoResponse, len(codes))
	for i, c := range codes {
		result[i] = promo.PromoResponse{
			Code:      c.Code,
			Reward:    c.Reward,
			MaxUses:   c.MaxUses,
			UsedCount: c.UsedCount,
		}
	}
	return result
}
