package giveaway_repo

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
	table           = "giveaways"
	colID           = "id"
	colPrize        = "prize"
	colDescription  = "description"
	colEndDate      = "end_date"
	colMediaFileID  = "media_file_id"
	colMediaType    = "media_type"
	colStatus       = "status"
	colWinnersCount = "winners_count"

	participantsTable = "participants"
	colUserID         = "user_id"
	colGiveawayID     = "giveaway_id"

	winnersTable = "giveaway_winners"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewGiveawayRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.GiveawayRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// Create - создание розыгрыша в статусе active.
// Возвращает ID созданного розыгрыша
func (r *repo) Create(ctx context.Context, giveaway *model.Giveaway) (int64, error) {
	query := sq.Insert(table).
		Columns(colPrize, colDescription, colEndDate, colMediaFileID, colMediaType, colStatus, colWinnersCount).
		Values(giveaway.Prize, giveaway.Description, giveaway.EndDate,
			giveaway.MediaFileID, giveaway.MediaType, model.GiveawayStatusActive, giveaway.WinnersCount).
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

// Get - розыгрыш по ID вместе со списком победителей
func (r *repo) Get(ctx context.Context, id int64) (*model.Giveaway, error) {
	query := sq.Select(colID, colPrize, colDescription, colEndDate, colMediaFileID, colMediaType, colStatus, colWinnersCount).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var g model.Giveaway
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&g.ID, &g.Prize, &g.Description, &g.EndDate,
		&g.MediaFileID, &g.MediaType, &g.Status, &g.WinnersCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	winnersQuery := sq.Select(colUserID).
		From(winnersTable).
		Where(sq.Eq{colGiveawayID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err = winnersQuery.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var winnerID int64
		if err := rows.Scan(&winnerID); err != nil {
			return nil, err
		}
		g.Winners = append(g.Winners, winnerID)
	}

	return &g, rows.Err()
}

// ListActive - все активные розыгрыши
func (r *repo) ListActive(ctx context.Context) ([]model.Giveaway, error) {
	query := sq.Select(colID, colPrize, colDescription, colEndDate, colMediaFileID, colMediaType, colStatus, colWinnersCount).
		From(table).
		Where(sq.Eq{colStatus: model.GiveawayStatusActive}).
		OrderBy(colEndDate).
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

	var giveaways []model.Giveaway
	for rows.Next() {
		var g model.Giveaway
		if err := rows.Scan(&g.ID, &g.Prize, &g.Description, &g.EndDate,
			&g.MediaFileID, &g.MediaType, &g.Status, &g.WinnersCount); err != nil {
			return nil, err
		}
		giveaways = append(giveaways, g)
	}

	return giveaways, rows.Err()
}

// ListExpiredActive - ID активных розыгрышей с истекшим сроком
func (r *repo) ListExpiredActive(ctx context.Context, now time.Time) ([]int64, error) {
	query := sq.Select(colID).
		From(table).
		Where(sq.Expr(colStatus+" = ? AND "+colEndDate+" < ?", model.GiveawayStatusActive, now)).
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

// AddParticipant - вставка пары (user, giveaway).
// Вставка проходит только пока розыгрыш активен, проверка и вставка
// делаются одним запросом. false - пользователь уже участвует
// или розыгрыш уже завершен
func (r *repo) AddParticipant(ctx context.Context, userID, giveawayID int64) (bool, error) {
	sub := sq.Select().
		Column(sq.Expr("?, ?", userID, giveawayID)).
		Where(sq.Expr(
			"EXISTS (SELECT 1 FROM "+table+" WHERE "+colID+" = ? AND "+colStatus+" = ?)",
			giveawayID, model.GiveawayStatusActive,
		))

	query := sq.Insert(participantsTable).
		Columns(colUserID, colGiveawayID).
		Select(sub).
		Suffix("ON CONFLICT (" + colUserID + ", " + colGiveawayID + ") DO NOTHING").
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

// ListParticipants - ID всех участников розыгрыша
func (r *repo) ListParticipants(ctx context.Context, giveawayID int64) ([]int64, error) {
	query := sq.Select(colUserID).
		From(participantsTable).
		Where(sq.Eq{colGiveawayID: giveawayID}).
		OrderBy(colUserID).
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

// CountParticipants - количество участников розыгрыша
func (r *repo) CountParticipants(ctx context.Context, giveawayID int64) (int, error) {
	query := sq.Select("COUNT(*)").
		From(participantsTable).
		Where(sq.Eq{colGiveawayID: giveawayID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ClaimCompletion - перевод active -> completed одним условным UPDATE.
// Конкурентный повторный розыгрыш увидит false и не перерисует победителей
func (r *repo) ClaimCompletion(ctx context.Context, id int64) (bool, error) {
	query := sq.Update(table).
		Set(colStatus, model.GiveawayStatusCompleted).
		Where(sq.Expr(colID+" = ? AND "+colStatus+" = ?", id, model.GiveawayStatusActive)).
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

// SetWinners - запись победителей завершенного розыгрыша
func (r *repo) SetWinners(ctx context.Context, id int64, winners []int64) error {
	for _, winnerID := range winners {
		query := sq.Insert(winnersTable).
			Columns(colGiveawayID, colUserID).
			Values(id, winnerID).
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
