package shop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service"
	"economy_backend/internal/service/shop"
)

func newFixture() (*mocks.UserRepo, *mocks.ShopRepo, service.ShopService) {
	users := mocks.NewUserRepo()
	items := mocks.NewShopRepo()
	serv := shop.NewShopService(items, users, mocks.TxManager{})
	return users, items, serv
}

func TestBuy(t *testing.T) {
	users, items, serv := newFixture()
	users.Add(1, 100)
	items.AddItem(model.ShopItem{ID: 1, Name: "VIP", Price: 60, Stock: 2})

	ctx := context.Background()

	purchase, err := serv.Buy(ctx, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, model.PurchaseStatusPending, purchase.Status)
	assert.Equal(t, int64(1), purchase.UserID)

	balance, _ := users.GetBalance(ctx, 1)
	assert.Equal(t, 40, balance)

	item, _ := items.GetItem(ctx, 1)
	assert.Equal(t, 1, item.Stock)
}

func TestBuyRejections(t *testing.T) {
	users, items, serv := newFixture()
	users.Add(1, 100)
	items.AddItem(model.ShopItem{ID: 1, Name: "VIP", Price: 60, Stock: 0})
	items.AddItem(model.ShopItem{ID: 2, Name: "Nick", Price: 500, Stock: -1})

	ctx := context.Background()

	_, err := serv.Buy(ctx, 1, 99)
	assert.ErrorIs(t, err, shop.ErrUnknownItem)

	_, err = serv.Buy(ctx, 1, 1)
	assert.ErrorIs(t, err, shop.ErrOutOfStock)

	_, err = serv.Buy(ctx, 1, 2)
	assert.ErrorIs(t, err, shop.ErrInsufficientFunds)

	// Отказы не трогают баланс
	balance, _ := users.GetBalance(ctx, 1)
	assert.Equal(t, 100, balance)
}

func TestBuyUnlimitedStock(t *testing.T) {
	users, items, serv := newFixture()
	users.Add(1, 1000)
	items.AddItem(model.ShopItem{ID: 1, Name: "Nick", Price: 100, Stock: -1})

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := serv.Buy(ctx, 1, 1)
		require.NoError(t, err)
	}

	item, _ := items.GetItem(ctx, 1)
	assert.Equal(t, -1, item.Stock, "unlimited stock must stay -1")
}

func TestApprove(t *testing.T) {
	users, items, serv := newFixture()
	users.Add(1, 100)
	items.AddItem(model.ShopItem{ID: 1, Name: "VIP", Price: 60, Stock: 2})

	ctx := context.Background()

	purchase, err := serv.Buy(ctx, 1, 1)
	require.NoError(t, err)

	require.NoError(t, serv.Approve(ctx, purchase.ID, "ok"))

	stored, _ := items.GetPurchase(ctx, purchase.ID)
	assert.Equal(t, model.PurchaseStatusApproved, stored.Status)
	assert.Equal(t, "ok", stored.AdminComment)

	// Повторное решение отклоняется
	err = serv.Approve(ctx, purchase.ID, "again")
	assert.ErrorIs(t, err, shop.ErrAlreadyResolved)

	err = serv.Approve(ctx, 999, "")
	assert.ErrorIs(t, err, shop.ErrUnknownPurchase)
}

func TestRejectRefundsAndRestoresStock(t *testing.T) {
	users, items, serv := newFixture()
	users.Add(1, 100)
	items.AddItem(model.ShopItem{ID: 1, Name: "VIP", Price: 60, Stock: 2})

	ctx := context.Background()

	purchase, err := serv.Buy(ctx, 1, 1)
	require.NoError(t, err)

	require.NoError(t, serv.Reject(ctx, purchase.ID, "no"))

	balance, _ := users.GetBalance(ctx, 1)
	assert.Equal(t, 100, balance, "price must be refunded")

	item, _ := items.GetItem(ctx, 1)
	assert.Equal(t, 2, item.Stock, "stock must be restored")

	stored, _ := items.GetPurchase(ctx, purchase.ID)
	assert.Equal(t, model.PurchaseStatusRejected, stored.Status)
}

func TestListPending(t *testing.T) {
	users, items, serv := newFixture()
	users.Add(1, 1000)
	items.AddItem(model.ShopItem{ID: 1, Name: "Nick", Price: 100, Stock: -1})

	ctx := context.Background()

	first, err := serv.Buy(ctx, 1, 1)
	require.NoError(t, err)
	_, err = serv.Buy(ctx, 1, 1)
	require.NoError(t, err)

	require.NoError(t, serv.Approve(ctx, first.ID, ""))

	pending, err := serv.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
