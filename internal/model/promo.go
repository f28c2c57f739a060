package model

type PromoCode struct {
	Code      string
	Reward    int
	MaxUses   int
	UsedCount int
}

type PromoResult struct {
	Reward  int
	Balance int // Баланс после начисления
}
