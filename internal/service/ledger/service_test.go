package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economy_backend/internal/model"
	"economy_backend/internal/repository/mocks"
	"economy_backend/internal/service/ledger"
)

func TestCreditDebit(t *testing.T) {
	users := mocks.NewUserRepo()
	serv := ledger.NewLedgerService(users)
	ctx := context.Background()

	// Неизвестный пользователь имеет баланс 0
	balance, err := serv.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	balance, err = serv.Credit(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	balance, err = serv.Debit(ctx, 1, 40)
	require.NoError(t, err)
	assert.Equal(t, 60, balance)

	// Баланс не уходит в минус
	_, err = serv.Debit(ctx, 1, 100)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	balance, err = serv.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 60, balance)
}

func TestAmountValidation(t *testing.T) {
	serv := ledger.NewLedgerService(mocks.NewUserRepo())
	ctx := context.Background()

	for _, amount := range []int{0, -10} {
		_, err := serv.Credit(ctx, 1, amount)
		assert.ErrorIs(t, err, ledger.ErrBadAmount)

		_, err = serv.Debit(ctx, 1, amount)
		assert.ErrorIs(t, err, ledger.ErrBadAmount)
	}
}

func TestConcurrentAdjustmentsPreserveSum(t *testing.T) {
	users := mocks.NewUserRepo()
	users.Add(1, 1000)
	serv := ledger.NewLedgerService(users)

	const workers = 20
	const rounds = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_, _ = serv.Credit(context.Background(), 1, 3)
				_, _ = serv.Debit(context.Background(), 1, 3)
			}
		}()
	}
	wg.Wait()

	// Каждая пара операций нейтральна, итог не меняется
	balance, err := serv.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1000, balance)
}

func TestConcurrentFirstCreditsAccumulate(t *testing.T) {
	// Пользователя еще нет в хранилище: конкурентные первые начисления
	// не должны терять друг друга, начисление делается одним upsert
	users := mocks.NewUserRepo()
	serv := ledger.NewLedgerService(users)

	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := serv.Credit(context.Background(), 7, 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := serv.GetBalance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, workers*10, balance)
}

func TestEnsureUserKeepsExistingBalance(t *testing.T) {
	users := mocks.NewUserRepo()
	users.Add(1, 500)
	serv := ledger.NewLedgerService(users)

	require.NoError(t, serv.EnsureUser(context.Background(), &model.User{ID: 1, Username: "old"}))

	balance, err := serv.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 500, balance)
}
