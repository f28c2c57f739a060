package ledger

type AdjustRequest struct {
	UserID int64 `json:"user_id"`
	Amount int   `json:"amount"` // Положительное целое, >0
}

type BalanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int   `json:"balance"`
}
