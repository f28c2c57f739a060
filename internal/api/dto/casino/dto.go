package casino

type PlayRequest struct {
	UserID int64 `json:"user_id"`
	Stake  int   `json:"stake"` // Ставка (положительное целое, >0)
}

type PlayResponse struct {
	Win     bool `json:"win"`
	Payout  int  `json:"payout"`  // Начислено при выигрыше
	Balance int  `json:"balance"` // Баланс после раунда
}
