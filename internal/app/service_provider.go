package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	adminAPI "economy_backend/internal/api/admin"
	authAPI "economy_backend/internal/api/auth"
	casinoAPI "economy_backend/internal/api/casino"
	giveawayAPI "economy_backend/internal/api/giveaway"
	ledgerAPI "economy_backend/internal/api/ledger"
	promoAPI "economy_backend/internal/api/promo"
	shopAPI "economy_backend/internal/api/shop"
	theftAPI "economy_backend/internal/api/theft"
	"economy_backend/internal/config"
	"economy_backend/internal/config/env"
	"economy_backend/internal/middleware"
	"economy_backend/internal/repository"
	"economy_backend/internal/repository/auth_repo"
	"economy_backend/internal/repository/ban_repo"
	"economy_backend/internal/repository/giveaway_repo"
	"economy_backend/internal/repository/promo_repo"
	"economy_backend/internal/repository/settings_repo"
	"economy_backend/internal/repository/shop_repo"
	"economy_backend/internal/repository/theft_stats_repo"
	"economy_backend/internal/repository/user_repo"
	"economy_backend/internal/service"
	"economy_backend/internal/service/admin"
	"economy_backend/internal/service/auth"
	"economy_backend/internal/service/casino"
	"economy_backend/internal/service/giveaway"
	"economy_backend/internal/service/ledger"
	"economy_backend/internal/service/promo"
	"economy_backend/internal/service/shop"
	"economy_backend/internal/service/theft"
	"economy_backend/pkg/chance"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Общий источник случайности
	rnd chance.Source

	// Gameplay config
	gameCfg config.GameConfig

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo   repository.UserRepository
	ledgerServ service.LedgerService
	ledgerHand *ledgerAPI.Handler

	// Settings + bans bits
	settingsRepo repository.SettingsRepository
	banRepo      repository.BanRepository
	adminServ    service.AdminService
	adminHand    *adminAPI.Handler

	// Theft bits
	theftStatsRepo repository.TheftStatsRepository
	theftServ      service.TheftService
	theftHand      *theftAPI.Handler

	// Casino bits
	casinoServ service.CasinoService
	casinoHand *casinoAPI.Handler

	// Promo bits
	promoRepo repository.PromoRepository
	promoServ service.PromoService
	promoHand *promoAPI.Handler

	// Giveaway bits
	giveawayRepo   repository.GiveawayRepository
	giveawayServ   service.GiveawayService
	giveawayWorker *giveaway.Worker
	giveawayHand   *giveawayAPI.Handler

	// Shop bits
	shopRepo repository.ShopRepository
	shopServ service.ShopService
	shopHand *shopAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) Rnd() chance.Source {
	if sp.rnd == nil {
		sp.rnd = chance.TimeSource()
	}
	return sp.rnd
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.authRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewLedgerService(sp.UserRepo(ctx))
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) LedgerHandler(ctx context.Context) *ledgerAPI.Handler {
	if sp.ledgerHand == nil {
		sp.ledgerHand = ledgerAPI.NewHandler(ledgerAPI.HandlerDeps{Serv: sp.LedgerService(ctx)})
	}
	return sp.ledgerHand
}

func (sp *ServiceProvider) SettingsRepo(ctx context.Context) repository.SettingsRepository {
	if sp.settingsRepo == nil {
		sp.settingsRepo = settings_repo.NewSettingsRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.settingsRepo
}

func (sp *ServiceProvider) BanRepo(ctx context.Context) repository.BanRepository {
	if sp.banRepo == nil {
		sp.banRepo = ban_repo.NewBanRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.banRepo
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = admin.NewAdminService(sp.SettingsRepo(ctx), sp.BanRepo(ctx))
	}
	return sp.adminServ
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{Serv: sp.AdminService(ctx)})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) TheftStatsRepo() repository.TheftStatsRepository {
	if sp.theftStatsRepo == nil {
		sp.theftStatsRepo = theft_stats_repo.NewTheftStatsRepository()
	}
	return sp.theftStatsRepo
}

func (sp *ServiceProvider) TheftService(ctx context.Context) service.TheftService {
	if sp.theftServ == nil {
		sp.theftServ = theft.NewTheftService(
			sp.UserRepo(ctx),
			sp.BanRepo(ctx),
			sp.SettingsRepo(ctx),
			sp.TheftStatsRepo(),
			sp.TXManager(ctx),
			sp.Rnd(),
		)
	}
	return sp.theftServ
}

func (sp *ServiceProvider) TheftHandler(ctx context.Context) *theftAPI.Handler {
	if sp.theftHand == nil {
		sp.theftHand = theftAPI.NewHandler(theftAPI.HandlerDeps{Serv: sp.TheftService(ctx)})
	}
	return sp.theftHand
}

func (sp *ServiceProvider) CasinoService(ctx context.Context) service.CasinoService {
	if sp.casinoServ == nil {
		sp.casinoServ = casino.NewCasinoService(
			sp.UserRepo(ctx),
			sp.SettingsRepo(ctx),
			sp.TXManager(ctx),
			sp.Rnd(),
		)
	}
	return sp.casinoServ
}

func (sp *ServiceProvider) CasinoHandler(ctx context.Context) *casinoAPI.Handler {
	if sp.casinoHand == nil {
		sp.casinoHand = casinoAPI.NewHandler(casinoAPI.HandlerDeps{Serv: sp.CasinoService(ctx)})
	}
	return sp.casinoHand
}

func (sp *ServiceProvider) PromoRepo(ctx context.Context) repository.PromoRepository {
	if sp.promoRepo == nil {
		sp.promoRepo = promo_repo.NewPromoRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.promoRepo
}

func (sp *ServiceProvider) PromoService(ctx context.Context) service.PromoService {
	if sp.promoServ == nil {
		sp.promoServ = promo.NewPromoService(sp.PromoRepo(ctx), sp.UserRepo(ctx), sp.TXManager(ctx))
	}
	return sp.promoServ
}

func (sp *ServiceProvider) PromoHandler(ctx context.Context) *promoAPI.Handler {
	if sp.promoHand == nil {
		sp.promoHand = promoAPI.NewHandler(promoAPI.HandlerDeps{Serv: sp.PromoService(ctx)})
	}
	return sp.promoHand
}

func (sp *ServiceProvider) GiveawayRepo(ctx context.Context) repository.GiveawayRepository {
	if sp.giveawayRepo == nil {
		sp.giveawayRepo = giveaway_repo.NewGiveawayRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.giveawayRepo
}

func (sp *ServiceProvider) GiveawayService(ctx context.Context) service.GiveawayService {
	if sp.giveawayServ == nil {
		sp.giveawayServ = giveaway.NewGiveawayService(sp.GiveawayRepo(ctx), sp.TXManager(ctx), sp.Rnd())
	}
	return sp.giveawayServ
}

func (sp *ServiceProvider) GiveawayWorker(ctx context.Context) *giveaway.Worker {
	if sp.giveawayWorker == nil {
		sp.giveawayWorker = giveaway.NewWorker(
			sp.GiveawayService(ctx),
			sp.GiveawayRepo(ctx),
			sp.GameCfg().GiveawayScanInterval(),
		)
	}
	return sp.giveawayWorker
}

func (sp *ServiceProvider) GiveawayHandler(ctx context.Context) *giveawayAPI.Handler {
	if sp.giveawayHand == nil {
		sp.giveawayHand = giveawayAPI.NewHandler(giveawayAPI.HandlerDeps{Serv: sp.GiveawayService(ctx)})
	}
	return sp.giveawayHand
}

func (sp *ServiceProvider) ShopRepo(ctx context.Context) repository.ShopRepository {
	if sp.shopRepo == nil {
		sp.shopRepo = shop_repo.NewShopRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.shopRepo
}

func (sp *ServiceProvider) ShopService(ctx context.Context) service.ShopService {
	if sp.shopServ == nil {
		sp.shopServ = shop.NewShopService(sp.ShopRepo(ctx), sp.UserRepo(ctx), sp.TXManager(ctx))
	}
	return sp.shopServ
}

func (sp *ServiceProvider) ShopHandler(ctx context.Context) *shopAPI.Handler {
	if sp.shopHand == nil {
		sp.shopHand = shopAPI.NewHandler(shopAPI.HandlerDeps{Serv: sp.ShopService(ctx)})
	}
	return sp.shopHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// User endpoints (дергает чат-транспорт)
		ledgerHandler := sp.LedgerHandler(ctx)
		r.Get("/users/{id}/balance", ledgerHandler.Balance)

		theftHandler := sp.TheftHandler(ctx)
		r.Route("/theft", func(rr chi.Router) {
			rr.Post("/attempt", theftHandler.Attempt)
			rr.Get("/cooldown/{id}", theftHandler.Cooldown)
			rr.Get("/stats", theftHandler.Stats)
		})

		casinoHandler := sp.CasinoHandler(ctx)
		r.Post("/casino/play", casinoHandler.Play)

		promoHandler := sp.PromoHandler(ctx)
		r.Post("/promo/redeem", promoHandler.Redeem)

		giveawayHandler := sp.GiveawayHandler(ctx)
		r.Route("/giveaways", func(rr chi.Router) {
			rr.Get("/active", giveawayHandler.ListActive)
			rr.Get("/{id}", giveawayHandler.Get)
			rr.Post("/{id}/enroll", giveawayHandler.Enroll)
		})

		shopHandler := sp.ShopHandler(ctx)
		r.Route("/shop", func(rr chi.Router) {
			rr.Get("/items", shopHandler.ListItems)
			rr.Post("/buy", shopHandler.Buy)
		})

		// Admin endpoints
		authHandler := sp.AuthHandler(ctx)
		adminHandler := sp.AdminHandler(ctx)
		r.Route("/admin", func(rr chi.Router) {
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)

			rr.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(sp.JWTCfg().AccessTokenSecretKey()))

				protected.Get("/settings", adminHandler.AllSettings)
				protected.Get("/settings/{key}", adminHandler.GetSetting)
				protected.Put("/settings/{key}", adminHandler.SetSetting)

				protected.Post("/promo", promoHandler.Create)
				protected.Get("/promo", promoHandler.List)
				protected.Delete("/promo/{code}", promoHandler.Delete)

				protected.Post("/giveaways", giveawayHandler.Create)
				protected.Post("/giveaways/{id}/draw", giveawayHandler.Draw)

				protected.Post("/ban", adminHandler.Ban)
				protected.Get("/bans", adminHandler.ListBans)
				protected.Delete("/ban/{id}", adminHandler.Unban)

				protected.Get("/purchases", shopHandler.ListPending)
				protected.Post("/purchases/{id}/approve", shopHandler.Approve)
				protected.Post("/purchases/{id}/reject", shopHandler.Reject)

				protected.Post("/users/credit", ledgerHandler.Credit)
				protected.Post("/users/debit", ledgerHandler.Debit)
			})
		})

		sp.router = r
	}

	return sp.router
}
