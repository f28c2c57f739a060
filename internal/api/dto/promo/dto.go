package promo

type RedeemRequest struct {
	UserID int64  `json:"user_id"`
	Code   string `json:"code"`
}

type RedeemResponse struct {
	Reward  int `json:"reward"`
	Balance int `json:"balance"` // Баланс после начисления
}

type CreateRequest struct {
	Code    string `json:"code"`
	Reward  int    `json:"reward"`
	MaxUses int    `json:"max_uses"`
}

type PromoResponse struct {
	Code      string `json:"code"`
	Reward    int    `json:"reward"`
	MaxUses   int    `json:"max_uses"`
	UsedCount int    `json:"used_count"`
}
