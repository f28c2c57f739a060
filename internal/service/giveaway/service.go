package giveaway

import (
	"context"
	"errors"
	"time"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/internal/service"
	"economy_backend/pkg/chance"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrUnknownGiveaway = errors.New("giveaway not found")
	ErrNotActive       = errors.New("giveaway is not active")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrAlreadyDrawn    = errors.New("giveaway already drawn")
	ErrNoParticipants  = errors.New("giveaway has no participants")
	ErrBadGiveaway     = errors.New("winners count must be positive and end time in the future")
)

type serv struct {
	giveawayRepo repository.GiveawayRepository
	txManager    trm.Manager
	rnd          chance.Source
}

// NewGiveawayService Создать движок розыгрышей
func NewGiveawayService(
	giveawayRepo repository.GiveawayRepository,
	txManager trm.Manager,
	rnd chance.Source,
) service.GiveawayService {
	return &serv{
		giveawayRepo: giveawayRepo,
		txManager:    txManager,
		rnd:          rnd,
	}
}

// Create - создание активного розыгрыша
func (s *serv) Create(ctx context.Context, giveaway *model.Giveaway) (int64, error) {
	if giveaway.WinnersCount < 1 || !giveaway.EndDate.After(time.Now()) {
		return 0, ErrBadGiveaway
	}

	giveaway.Status = model.GiveawayStatusActive
	return s.giveawayRepo.Create(ctx, giveaway)
}

// Get - розыгрыш по ID
func (s *serv) Get(ctx context.Context, id int64) (*model.Giveaway, error) {
	g, err := s.giveawayRepo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnknownGiveaway
	}
	return g, err
}

// ListActive - все активные розыгрыши
func (s *serv) ListActive(ctx context.Context) ([]model.Giveaway, error) {
	return s.giveawayRepo.ListActive(ctx)
}

// Enroll записывает пользователя в участники.
// Повторная запись отклоняется, но каскадной ошибки не вызывает
func (s *serv) Enroll(ctx context.Context, userID, giveawayID int64) error {
	g, err := s.Get(ctx, giveawayID)
	if err != nil {
		return err
	}
	if g.Status != model.GiveawayStatusActive || time.Now().After(g.EndDate) {
		return ErrNotActive
	}

	added, err := s.giveawayRepo.AddParticipant(ctx, userID, giveawayID)
	if err != nil {
		return err
	}
	if !added {
		// Вставка в репозитории проходит только для активного розыгрыша,
		// поэтому отказ означает либо повторную заявку, либо розыгрыш,
		// завершившийся между проверкой выше и вставкой
		g, err = s.Get(ctx, giveawayID)
		if err != nil {
			return err
		}
		if g.Status != model.GiveawayStatusActive {
			return ErrNotActive
		}
		return ErrAlreadyEnrolled
	}

	return nil
}
