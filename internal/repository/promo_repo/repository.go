package promo_repo

import (
	"context"
	"errors"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "promocodes"
	colCode      = "code"
	colReward    = "reward"
	colMaxUses   = "max_uses"
	colUsedCount = "used_count"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPromoRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.PromoRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetByCode - промокод по строке кода
func (r *repo) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := sq.Select(colCode, colReward, colMaxUses, colUsedCount).
		From(table).
		Where(sq.Eq{colCode: code}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var promo model.PromoCode
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&promo.Code, &promo.Reward, &promo.MaxUses, &promo.UsedCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &promo, nil
}

// ConsumeUse - инкремент счетчика использований.
// Условие used_count < max_uses в самом UPDATE: конкурентные активации
// в сумме никогда не превысят лимит. false - код исчерпан
func (r *repo) ConsumeUse(ctx context.Context, code string) (bool, error) {
	query := sq.Update(table).
		Set(colUsedCount, sq.Expr(colUsedCount+" + 1")).
		Where(sq.Expr(colCode+" = ? AND "+colUsedCount+" < "+colMaxUses, code)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// Create - создание промокода
func (r *repo) Create(ctx context.Context, promo *model.PromoCode) error {
	query := sq.Insert(table).
		Columns(colCode, colReward, colMaxUses, colUsedCount).
		Values(promo.Code, promo.Reward, promo.MaxUses, promo.UsedCount).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// Delete - удаление промокода
func (r *repo) Delete(ctx context.Context, code string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colCode: code}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List - все промокоды
func (r *repo) List(ctx context.Context) ([]model.PromoCode, error) {
	query := sq.Select(colCode, colReward, colMaxUses, colUsedCount).
		From(table).
		OrderBy(colCode).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []model.PromoCode
	for rows.Next() {
		var promo model.PromoCode
		if err := rows.Scan(&promo.Code, &promo.Reward, &promo.MaxUses, &promo.UsedCount); err != nil {
			return nil, err
		}
		promos = append(promos, promo)
	}

	return promos, rows.Err()
}
