package converter

import (
	"economy_backend/internal/api/dto/shop"
	"economy_backend/internal/model"
)

func ToShopItemResponses(items []model.ShopItem) []shop.ItemResponse {
	result := make([]shop.ItemResponse, len(items))
	for i, item := range items {
		result[i] = shop.ItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Stock:       item.Stock,
		}
	}
	return result
}

func ToPurchaseResponse(p model.Purchase) shop.PurchaseResponse {
	return shop.PurchaseResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		ItemID:       p.ItemID,
		PurchaseDate: p.PurchaseDate,
		Status:       string(p.Status),
		AdminComment: p.AdminComment,
	}
}

func ToPurchaseResponses(purchases []model.Purchase) []shop.PurchaseResponse {
	result := make([]shop.PurchaseResponse, len(purchases))
	for i, p := range purchases {
		result[i] = ToPurchaseResponse(p)
	}
	return result
}
