package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"construction-pm/internal/core/auth"
	"construction-pm/internal/core/config"
	"construction-pm/internal/core/database"
	"construction-pm/internal/core/server"
	"construction-pm/internal/domain"
	"construction-pm/internal/repo"
	"construction-pm/internal/service"
	"construction-pm/internal/transport/http/handler"
	mdw "construction-pm/internal/transport/http/middleware"
)

type Options struct {
	// HTTP limits; a zero value disables the matching middleware.
	HTTP config.HTTP
	// ProjectCache fronts project reads when set.
	ProjectCache repo.ProjectCache
	CacheTTL     time.Duration
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, opt Options) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(mdw.RequestID(), mdw.AccessLog(l), mdw.Metrics())
	useLimits(r, opt.HTTP)

	users := repo.NewUserRepo(db)
	var projects domain.ProjectRepository = repo.NewProjectRepo(db)
	if opt.ProjectCache != nil {
		projects = repo.NewCachedProjectRepo(projects, opt.ProjectCache, opt.CacheTTL, l)
	}
	tasks := repo.NewTaskRepo(db)

	userSvc := service.NewUserService(users)
	authH := handler.NewAuthHandler(service.NewAuthService(users, jwter), userSvc)
	userH := handler.NewUserHandler(userSvc)
	projectH := handler.NewProjectHandler(service.NewProjectService(projects))
	taskH := handler.NewTaskHandler(service.NewTaskService(tasks))

	r.GET("/health", handler.Health(func(ctx context.Context) error { return database.Ping(ctx, db) }))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.GET("/me", mdw.AuthJWT(jwter), authH.Me)

	api.GET("/users", userH.List)
	api.PUT("/users/:id", userH.Update)
	api.DELETE("/users/:id", userH.Delete)

	api.GET("/projects", projectH.List)
	api.POST("/projects", projectH.Create)
	api.GET("/projects/owner/:owner_id", projectH.ListByOwner)
	api.GET("/projects/:id", projectH.Get)
	api.PUT("/projects/:id", projectH.Update)
	api.DELETE("/projects/:id", projectH.Delete)

	api.GET("/tasks", taskH.List)
	api.POST("/tasks", taskH.Create)
	api.PUT("/tasks/:id", taskH.Update)
	api.DELETE("/tasks/:id", taskH.Delete)

	return r
}

func useLimits(r *gin.Engine, h config.HTTP) {
	if h.RateLimitRPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(h.RateLimitRPS), max(h.RateLimitBurst, 1)))
	}
	if h.PerIPRPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(h.PerIPRPS), max(h.PerIPBurst, 1)))
	}
	if h.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(h.MaxConcurrent))
	}
	if h.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(h.MaxBodyBytes))
	}
	if h.RequestTimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(h.RequestTimeoutSec) * time.Second))
	}
}
