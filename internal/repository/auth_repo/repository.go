package auth_repo

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
	table          = "sessions"
	colSessionID   = "session_id"
	colAdminID     = "admin_id"
	colRefreshHash = "refresh_hash"
	colExpiredTime = "expired_time"

	adminsTable     = "admins"
	colID           = "id"
	colLogin        = "login"
	colPasswordHash = "password_hash"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAuthRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.AuthRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateSession - создает сессию админа в БД
func (r *repo) CreateSession(ctx context.Context, session *model.Session) error {
	query := sq.Insert(table).
		Columns(colSessionID, colAdminID, colRefreshHash, colExpiredTime).
		Values(session.ID, session.AdminID, session.RefreshToken, session.ExpiresAt).
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

// GetRefreshTokenBySessionID - получить хэш refresh токена по session ID
func (r *repo) GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (string, error) {
	query := sq.Select(colRefreshHash).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var refreshHash string
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&refreshHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", err
	}

	return refreshHash, nil
}

// DeleteSession - удаляет сессию из БД
func (r *repo) DeleteSession(ctx context.Context, sessionID string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colSessionID: sessionID}).
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

// GetAdminBySessionID - возвращает модель админа по session ID
func (r *repo) GetAdminBySessionID(ctx context.Context, sessionID string) (*model.Admin, error) {
	query := sq.Select("a."+colID, "a."+colLogin, "a."+colPasswordHash).
		From(table + " s").
		Join(adminsTable + " a ON s." + colAdminID + " = a." + colID).
		Where(sq.Eq{"s." + colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin model.Admin
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&admin.ID, &admin.Login, &admin.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &admin, nil
}

// GetAdminByLogin - возвращает модель админа по логину
func (r *repo) GetAdminByLogin(ctx context.Context, login string) (*model.Admin, error) {
	query := sq.Select(colID, colLogin, colPasswordHash).
		From(adminsTable).
		Where(sq.Eq{colLogin: login}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin model.Admin
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&admin.ID, &admin.Login, &admin.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &admin, nil
}

// CreateAdmin - создает админа, возвращает его ID
func (r *repo) CreateAdmin(ctx context.Context, admin *model.Admin) (int64, error) {
	query := sq.Insert(adminsTable).
		Columns(colLogin, colPasswordHash).
		Values(admin.Login, admin.Password).
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
