package settings_repo

import (
	"context"
	"errors"
	"strconv"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table    = "settings"
	colKey   = "key"
	colValue = "value"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSettingsRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.SettingsRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// Get - значение настройки по ключу.
// Если записи нет, возвращается значение по умолчанию
func (r *repo) Get(ctx context.Context, key string) (string, error) {
	query := sq.Select(colValue).
		From(table).
		Where(sq.Eq{colKey: key}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var value string
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if def, ok := model.DefaultSettings[key]; ok {
				return def, nil
			}
			return "", repository.ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// GetInt - числовое значение настройки
func (r *repo) GetInt(ctx context.Context, key string) (int, error) {
	value, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// Set - установка значения настройки, создает запись при отсутствии
func (r *repo) Set(ctx context.Context, key, value string) error {
	query := sq.Insert(table).
		Columns(colKey, colValue).
		Values(key, value).
		Suffix("ON CONFLICT (" + colKey + ") DO UPDATE SET " + colValue + " = EXCLUDED." + colValue).
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

// GetAll - все настройки, отсутствующие ключи добиваются значениями по умолчанию
func (r *repo) GetAll(ctx context.Context) (map[string]string, error) {
	query := sq.Select(colKey, colValue).
		From(table).
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

	settings := make(map[string]string, len(model.DefaultSettings))
	for key, value := range model.DefaultSettings {
		settings[key] = value
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// SeedDefaults - вставка отсутствующих ключей, существующие не трогаются
func (r *repo) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	for key, value := range defaults {
		query := sq.Insert(table).
			Columns(colKey, colValue).
			Values(key, value).
			Suffix("ON CONFLICT (" + colKey + ") DO NOTHING").
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
