package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"economy_backend/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// seedDefaults засевает игровые настройки и ассортимент магазина.
// Уже существующие записи не перезаписываются
func (s *App) seedDefaults(ctx context.Context) error {
	sp := s.ServiceProvider

	err := sp.SettingsRepo(ctx).SeedDefaults(ctx, sp.GameCfg().DefaultSettings())
	if err != nil {
		return err
	}

	return sp.ShopRepo(ctx).SeedDefaultItems(ctx, sp.GameCfg().DefaultShopItems())
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	// Контекст отменяется по SIGINT/SIGTERM, вместе с ним
	// останавливается фоновый воркер
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.seedDefaults(ctx); err != nil {
		return err
	}

	// Фоновое завершение просроченных розыгрышей
	go s.ServiceProvider.GiveawayWorker(ctx).Start(ctx)

	srv := &http.Server{
		Addr:    s.ServiceProvider.HTTPCfg().Address(),
		Handler: s.ServiceProvider.Router(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server at %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err = <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
