package model

import "time"

// Stock = -1 означает безлимитный товар
type ShopItem struct {
	ID          int64
	Name        string
	Description string
	Price       int
	Stock       int
}

type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusApproved PurchaseStatus = "approved"
	PurchaseStatusRejected PurchaseStatus = "rejected"
)

type Purchase struct {
	ID           int64
	UserID       int64
	ItemID       int64
	PurchaseDate time.Time
	Status       PurchaseStatus
	AdminComment string
}
