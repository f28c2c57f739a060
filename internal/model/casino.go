package model

type CasinoRound struct {
	UserID int64
	Stake  int
}

type CasinoResult struct {
	Win     bool
	Payout  int // Начислено при выигрыше (2x ставки)
	Balance int // Баланс после раунда
}
