package shop_repo

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
	itemsTable     = "shop_items"
	colID          = "id"
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colStock       = "stock"

	purchasesTable  = "purchases"
	colUserID       = "user_id"
	colItemID       = "item_id"
	colPurchaseDate = "purchase_date"
	colStatus       = "status"
	colAdminComment = "admin_comment"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewShopRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.ShopRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// ListItems - все товары магазина
func (r *repo) ListItems(ctx context.Context) ([]model.ShopItem, error) {
	query := sq.Select(colID, colName, colDescription, colPrice, colStock).
		From(itemsTable).
		OrderBy(colID).
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

	var items []model.ShopItem
	for rows.Next() {
		var item model.ShopItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Stock); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItem - товар по ID
func (r *repo) GetItem(ctx context.Context, id int64) (*model.ShopItem, error) {
	query := sq.Select(colID, colName, colDescription, colPrice, colStock).
		From(itemsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var item model.ShopItem
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

// DecrementStock - уменьшение остатка под защитой stock > 0.
// Для безлимитного товара (stock = -1) остаток не меняется, всегда true
func (r *repo) DecrementStock(ctx context.Context, itemID int64) (bool, error) {
	item, err := r.GetItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item.Stock < 0 {
		return true, nil
	}

	query := sq.Update(itemsTable).
		Set(colStock, sq.Expr(colStock+" - 1")).
		Where(sq.Expr(colID+" = ? AND "+colStock+" > 0", itemID)).
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

// RestoreStock - возврат единицы остатка при отклонении покупки.
// Безлимитный товар не трогается
func (r *repo) RestoreStock(ctx context.Context, itemID int64) error {
	query := sq.Update(itemsTable).
		Set(colStock, sq.Expr(colStock+" + 1")).
		Where(sq.Expr(colID+" = ? AND "+colStock+" >= 0", itemID)).
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

// SeedDefaultItems - заполнение магазина товарами по умолчанию.
// Существующие товары не дублируются
func (r *repo) SeedDefaultItems(ctx context.Context, items []model.ShopItem) error {
	for _, item := range items {
		query := sq.Insert(itemsTable).
			Columns(colName, colDescription, colPrice, colStock).
			Values(item.Name, item.Description, item.Price, item.Stock).
			Suffix("ON CONFLICT (" + colName + ") DO NOTHING").
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}

		_, err = r.db(ctx).Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
	}

	return nil
}

// CreatePurchase - создание покупки, возвращает ее ID
func (r *repo) CreatePurchase(ctx context.Context, purchase *model.Purchase) (int64, error) {
	query := sq.Insert(purchasesTable).
		Columns(colUserID, colItemID, colPurchaseDate, colStatus, colAdminComment).
		Values(purchase.UserID, purchase.ItemID, purchase.PurchaseDate, purchase.Status, purchase.AdminComment).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetPurchase - покупка по ID
func (r *repo) GetPurchase(ctx context.Context, id int64) (*model.Purchase, error) {
	query := sq.Select(colID, colUserID, colItemID, colPurchaseDate, colStatus, colAdminComment).
		From(purchasesTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p model.Purchase
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&p.ID, &p.UserID, &p.ItemID, &p.PurchaseDate, &p.Status, &p.AdminComment,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

// ListPurchasesByStatus - покупки в указанном статусе
func (r *repo) ListPurchasesByStatus(ctx context.Context, status model.PurchaseStatus) ([]model.Purchase, error) {
	query := sq.Select(colID, colUserID, colItemID, colPurchaseDate, colStatus, colAdminComment).
		From(purchasesTable).
		Where(sq.Eq{colStatus: status}).
		OrderBy(colPurchaseDate).
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

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ItemID, &p.PurchaseDate, &p.Status, &p.AdminComment); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}

// SetPurchaseStatus - перевод покупки из pending в решение админа.
// false - покупка уже рассмотрена
func (r *repo) SetPurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus, comment string) (bool, error) {
	query := sq.Update(purchasesTable).
		Set(colStatus, status).
		Set(colAdminComment, comment).
		Where(sq.Expr(colID+" = ? AND "+colStatus+" = ?", id, model.PurchaseStatusPending)).
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
