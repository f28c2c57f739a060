package promo_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service/promo"
)

func TestRedeem(t *testing.T) {
	users := mocks.NewUserRepo()
	users.Add(1, 10)

	codes := mocks.NewPromoRepo()
	require.NoError(t, codes.Create(context.Background(), &model.PromoCode{
		Code: "BONUS", Reward: 100, MaxUses: 2,
	}))

	serv := promo.NewPromoService(codes, users, mocks.TxManager{})

	res, err := serv.Redeem(context.Background(), 1, "BONUS")
	require.NoError(t, err)
	assert.Equal(t, 100, res.Reward)
	assert.Equal(t, 110, res.Balance)

	_, err = serv.Redeem(context.Background(), 2, "BONUS")
	require.NoError(t, err)

	// Лимит общий на код, третья активация не проходит
	_, err = serv.Redeem(context.Background(), 3, "BONUS")
	assert.ErrorIs(t, err, promo.ErrExhausted)

	_, err = serv.Redeem(context.Background(), 1, "NOPE")
	assert.ErrorIs(t, err, promo.ErrUnknownCode)
}

func TestRedeemConcurrentNeverExceedsMaxUses(t *testing.T) {
	const maxUses = 10
	const racers = 50

	users := mocks.NewUserRepo()
	codes := mocks.NewPromoRepo()
	require.NoError(t, codes.Create(context.Background(), &model.PromoCode{
		Code: "RACE", Reward: 5, MaxUses: maxUses,
	}))

	serv := promo.NewPromoService(codes, users, mocks.TxManager{})

	var succeeded int64
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			if _, err := serv.Redeem(context.Background(), userID, "RACE"); err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, int64(maxUses), succeeded)

	stored, err := codes.GetByCode(context.Background(), "RACE")
	require.NoError(t, err)
	assert.Equal(t, maxUses, stored.UsedCount)
}

func TestCreateValidation(t *testing.T) {
	serv := promo.NewPromoService(mocks.NewPromoRepo(), mocks.NewUserRepo(), mocks.TxManager{})
	ctx := context.Background()

	err := serv.Create(ctx, &model.PromoCode{Code: "X", Reward: 0, MaxUses: 1})
	assert.ErrorIs(t, err, promo.ErrBadPromo)

	err = serv.Create(ctx, &model.PromoCode{Code: "X", Reward: 10, MaxUses: 0})
	assert.ErrorIs(t, err, promo.ErrBadPromo)

	require.NoError(t, serv.Create(ctx, &model.PromoCode{Code: "X", Reward: 10, MaxUses: 1}))

	err = serv.Create(ctx, &model.PromoCode{Code: "X", Reward: 10, MaxUses: 1})
	assert.ErrorIs(t, err, promo.ErrDuplicate)
}

func TestDelete(t *testing.T) {
	codes := mocks.NewPromoRepo()
	serv := promo.NewPromoService(codes, mocks.NewUserRepo(), mocks.TxManager{})
	ctx := context.Background()

	require.NoError(t, serv.Create(ctx, &model.PromoCode{Code: "GONE", Reward: 10, MaxUses: 1}))
	require.NoError(t, serv.Delete(ctx, "GONE"))

	err := serv.Delete(ctx, "GONE")
	assert.ErrorIs(t, err, promo.ErrUnknownCode)
}
