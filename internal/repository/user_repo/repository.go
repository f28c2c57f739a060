package user_repo

import (
	"context"
	"errors"
	"time"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "users"
	colUserID         = "user_id"
	colUsername       = "username"
	colFirstName      = "first_name"
	colJoinedDate     = "joined_date"
	colBalance        = "balance"
	colLastTheftTime  = "last_theft_time"
	colTheftAttempts  = "theft_attempts"
	colTheftSuccess   = "theft_success"
	colTheftFailed    = "theft_failed"
	colTheftProtected = "theft_protected"
	colTheftLosses    = "theft_losses"

	bannedTable = "banned_users"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// db возвращает транзакцию из контекста, если она открыта, иначе пул
func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// EnsureUser - создает пользователя при первом обращении.
// Существующая запись не изменяется
func (r *repo) EnsureUser(ctx context.Context, user *model.User) error {
	query := sq.Insert(table).
		Columns(colUserID, colUsername, colFirstName, colJoinedDate, colBalance).
		Values(user.ID, user.Username, user.FirstName, user.JoinedDate, user.Balance).
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

// GetUser - возвращает модель пользователя по его ID
func (r *repo) GetUser(ctx context.Context, id int64) (*model.User, error) {
	query := sq.Select(colUserID, colUsername, colFirstName, colJoinedDate, colBalance,
		colLastTheftTime, colTheftAttempts, colTheftSuccess, colTheftFailed, colTheftProtected, colTheftLosses).
		From(table).
		Where(sq.Eq{colUserID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.JoinedDate, &user.Balance,
		&user.LastTheftTime, &user.TheftAttempts, &user.TheftSuccess,
		&user.TheftFailed, &user.TheftProtected, &user.TheftLosses,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID.
// Возвращает 0, если записи нет
func (r *repo) GetBalance(ctx context.Context, id int64) (int, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colUserID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return balance, nil
}

// Credit - атомарное начисление amount на баланс одним upsert.
// Возвращает новый баланс. Если записи нет, создается с балансом amount;
// два конкурентных первых начисления не конфликтуют
func (r *repo) Credit(ctx context.Context, id int64, amount int) (int, error) {
	query := sq.Insert(table).
		Columns(colUserID, colJoinedDate, colBalance).
		Values(id, time.Now(), amount).
		Suffix("ON CONFLICT (" + colUserID + ") DO UPDATE SET " +
			colBalance + " = " + table + "." + colBalance + " + EXCLUDED." + colBalance).
		Suffix("RETURNING " + colBalance).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// Debit - атомарное списание amount с баланса.
// Условие balance >= amount в самом UPDATE, баланс никогда не уходит в минус.
// Возвращает ErrInsufficientFunds, если средств не хватает
func (r *repo) Debit(ctx context.Context, id int64, amount int) (int, error) {
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" - ?", amount)).
		Where(sq.Expr(colUserID+" = ? AND "+colBalance+" >= ?", id, amount)).
		Suffix("RETURNING " + colBalance).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrInsufficientFunds
		}
		return 0, err
	}

	return balance, nil
}

// ClaimTheftCooldown - проверка кулдауна и фиксация попытки одним UPDATE.
// Два конкурентных вызова не могут оба увидеть "готов": условие в WHERE
func (r *repo) ClaimTheftCooldown(ctx context.Context, id int64, now time.Time, cooldown time.Duration) (bool, error) {
	cutoff := now.Add(-cooldown)

	query := sq.Update(table).
		Set(colLastTheftTime, now).
		Where(sq.Expr(
			colUserID+" = ? AND ("+colLastTheftTime+" IS NULL OR "+colLastTheftTime+" <= ?)",
			id, cutoff,
		)).
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

// GetLastTheftTime - время последней попытки ограбления, nil если попыток не было
func (r *repo) GetLastTheftTime(ctx context.Context, id int64) (*time.Time, error) {
	query := sq.Select(colLastTheftTime).
		From(table).
		Where(sq.Eq{colUserID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var last *time.Time
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return last, nil
}

// ListTheftCandidates - ID пользователей, пригодных в жертвы:
// не сам грабитель, не в бане, баланс не ниже minBalance
func (r *repo) ListTheftCandidates(ctx context.Context, excludeID int64, minBalance int) ([]int64, error) {
	query := sq.Select(colUserID).
		From(table).
		Where(sq.Expr(
			colUserID+" <> ? AND "+colBalance+" >= ? AND "+
				colUserID+" NOT IN (SELECT "+colUserID+" FROM "+bannedTable+")",
			excludeID, minBalance,
		)).
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

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// AddTheftStats - инкремент счетчиков статистики пользователя
func (r *repo) AddTheftStats(ctx context.Context, id int64, delta model.TheftStatsDelta) error {
	query := sq.Update(table).
		Set(colTheftAttempts, sq.Expr(colTheftAttempts+" + ?", delta.Attempts)).
		Set(colTheftSuccess, sq.Expr(colTheftSuccess+" + ?", delta.Success)).
		Set(colTheftFailed, sq.Expr(colTheftFailed+" + ?", delta.Failed)).
		Set(colTheftProtected, sq.Expr(colTheftProtected+" + ?", delta.Protected)).
		Set(colTheftLosses, sq.Expr(colTheftLosses+" + ?", delta.Losses)).
		Where(sq.Eq{colUserID: id}).
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
