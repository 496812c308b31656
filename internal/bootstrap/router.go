package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/ccstudio/portfolio-backend/internal/api/http"
	"github.com/ccstudio/portfolio-backend/internal/api/http/middleware"
	authhttp "github.com/ccstudio/portfolio-backend/internal/auth/http"
	authmw "github.com/ccstudio/portfolio-backend/internal/auth/middleware"
	authrepo "github.com/ccstudio/portfolio-backend/internal/auth/repository"
	authservice "github.com/ccstudio/portfolio-backend/internal/auth/service"
	projhttp "github.com/ccstudio/portfolio-backend/internal/projects/http"
	projrepo "github.com/ccstudio/portfolio-backend/internal/projects/repository"
	projservice "github.com/ccstudio/portfolio-backend/internal/projects/service"
	"github.com/ccstudio/portfolio-backend/internal/settings"
	"github.com/ccstudio/portfolio-backend/internal/storage"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	DB           *pgxpool.Pool
	Redis        *redis.Client
	Store        storage.Store
	SessionTTL   time.Duration
	AllowOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	sessionRepo := authrepo.NewSessionRepository(dep.Redis, dep.SessionTTL)
	adminRepo := authrepo.NewAdminRepository(dep.DB)
	authSvc := authservice.NewAuthService(adminRepo, sessionRepo)

	projectRepo := projrepo.New(dep.DB)
	projectSvc := projservice.NewProjectService(projectRepo, dep.Store)
	settingsRepo := settings.NewRepo(dep.DB)

	// public, read only
	projhttp.NewPublic(projectRepo).Register(api.Group("/projects"))
	settings.NewHandler(settingsRepo).Register(api)

	authHandler := authhttp.New(authSvc)
	authGroup := api.Group("/auth")
	authHandler.Register(authGroup)

	sessionGroup := authGroup.Group("")
	sessionGroup.Use(authmw.SessionAuthMiddleware(authSvc))
	authHandler.RegisterSession(sessionGroup)

	admin := api.Group("/admin")
	admin.Use(authmw.SessionAuthMiddleware(authSvc))
	projhttp.NewAdmin(projectSvc, projectRepo).Register(admin.Group("/projects"))

	return r
}
