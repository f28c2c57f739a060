package shop

import "time"

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"` // -1 означает безлимит
}

type BuyRequest struct {
	UserID int64 `json:"user_id"`
	ItemID int64 `json:"item_id"`
}

type PurchaseResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ItemID       int64     `json:"item_id"`
	PurchaseDate time.Time `json:"purchase_date"`
	Status       string    `json:"status"`
	AdminComment string    `json:"admin_comment,omitempty"`
}

type ResolveRequest struct {
	Comment string `json:"comment,omitempty"`
}
