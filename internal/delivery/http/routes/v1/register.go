package v1

import (
	"log"

	"github.com/eKidenge/QuickConnect-sub000/internal/config"
	"github.com/eKidenge/QuickConnect-sub000/internal/database"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/handler"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/infrastructure/cache"
	"github.com/eKidenge/QuickConnect-sub000/internal/pkg/jwt"
	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	professionalRepo := repository.NewPostgresProfessionalRepository(deps.DB)
	categoryRepo := repository.NewPostgresCategoryRepository(deps.DB)
	sessionRepo := repository.NewPostgresSessionRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	matchingUC := usecase.NewMatchmakingUsecase(professionalRepo, deps.Cache)
	pairingUC := usecase.NewPairingUsecase(sessionRepo, deps.Cache, deps.Config.Matchmaking.LockTTL, deps.Logger)
	autopairUC := usecase.NewAutoPairUsecase(professionalRepo, pairingUC)
	sessionUC := usecase.NewSessionUsecase(sessionRepo)
	professionalUC := usecase.NewProfessionalUsecase(professionalRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)

	authHandler := handler.NewAuthHandler(authUC)
	matchmakingHandler := handler.NewMatchmakingHandler(matchingUC, autopairUC, categoryUC)
	sessionHandler := handler.NewSessionHandler(sessionUC)
	professionalHandler := handler.NewProfessionalHandler(professionalUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	categoryHandler.RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	matchmakingHandler.RegisterRoutes(protected)
	sessionHandler.RegisterRoutes(protected)
	professionalHandler.RegisterRoutes(protected)
}
