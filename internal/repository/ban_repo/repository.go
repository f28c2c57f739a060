package ban_repo

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
	table         = "banned_users"
	colUserID     = "user_id"
	colBannedBy   = "banned_by"
	colBannedDate = "banned_date"
	colReason     = "reason"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewBanRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.BanRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// IsBanned - есть ли пользователь в бан-листе
func (r *repo) IsBanned(ctx context.Context, userID int64) (bool, error) {
	query := sq.Select(colUserID).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var id int64
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Ban - добавление пользователя в бан-лист.
// Повторный бан не ошибка
func (r *repo) Ban(ctx context.Context, entry *model.BanEntry) error {
	query := sq.Insert(table).
		Columns(colUserID, colBannedBy, colBannedDate, colReason).
		Values(entry.UserID, entry.BannedBy, entry.BannedDate, entry.Reason).
		Suffix("ON CONFLICT (" + colUserID + ") DO NOTHING").
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

// Unban - удаление пользователя из бан-листа
func (r *repo) Unban(ctx context.Context, userID int64) error {
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID}).
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

// List - все записи бан-листа
func (r *repo) List(ctx context.Context) ([]model.BanEntry, error) {
	query := sq.Select(colUserID, colBannedBy, colBannedDate, colReason).
		From(table).
		OrderBy(colBannedDate + " DESC").
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

	var entries []model.BanEntry
	for rows.Next() {
		var entry model.BanEntry
		if err := rows.Scan(&entry.UserID, &entry.BannedBy, &entry.BannedDate, &entry.Reason); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
