package giveaway

import (
	"context"
	"errors"
	"log"
	"time"

	"economy_backend/internal/repository"
	"economy_backend/internal/service"
)

// Worker периодически завершает просроченные розыгрыши.
// Ручной розыгрыш админа между проходами не мешает: повторное
// завершение отсекается условным UPDATE внутри Draw
type Worker struct {
	serv         service.GiveawayService
	giveawayRepo repository.GiveawayRepository
	interval     time.Duration
}

// NewWorker Создать планировщик завершения розыгрышей
func NewWorker(serv service.GiveawayService, giveawayRepo repository.GiveawayRepository, interval time.Duration) *Worker {
	return &Worker{
		serv:         serv,
		giveawayRepo: giveawayRepo,
		interval:     interval,
	}
}

// Start запускает цикл планировщика до отмены контекста
func (w *Worker) Start(ctx context.Context) {
	log.Printf("giveaway worker started, interval %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("giveaway worker stopped")
			return
		case <-ticker.C:
			w.drawExpired(ctx)
		}
	}
}

func (w *Worker) drawExpired(ctx context.Context) {
	ids, err := w.giveawayRepo.ListExpiredActive(ctx, time.Now())
	if err != nil {
		log.Println("giveaway worker: list expired error:", err)
		return
	}

	for _, id := range ids {
		res, err := w.serv.Draw(ctx, id)
		switch {
		case err == nil:
			log.Printf("giveaway %d drawn, winners %v", id, res.Winners)
		case errors.Is(err, ErrNoParticipants):
			log.Printf("giveaway %d expired with no participants", id)
		case errors.Is(err, ErrAlreadyDrawn):
			// Админ успел разыграть вручную между проходами
		default:
			log.Printf("giveaway worker: draw %d error: %v", id, err)
		}
	}
}
