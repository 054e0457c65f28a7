package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"wanderwise/cmd/fx/config_fx"
	"wanderwise/cmd/fx/controllers_fx"
	"wanderwise/cmd/fx/db_fx"
	"wanderwise/cmd/fx/generation_fx"
	"wanderwise/cmd/fx/image_fx"
	"wanderwise/cmd/fx/memcache_fx"
	"wanderwise/cmd/fx/recommendation_fx"
	"wanderwise/cmd/fx/saved_search_fx"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/config"
	"wanderwise/pkg/logger"
	"wanderwise/pkg/middleware"
	"wanderwise/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Zap()}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		generation_fx.Module,
		image_fx.Module,
		saved_search_fx.Module,
		recommendation_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log logger.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", logger.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", logger.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type routerParams struct {
	fx.In

	Config                   *config.Config
	Log                      logger.Logger
	RecommendationController *controllers.RecommendationController
	SavedSearchController    *controllers.SavedSearchController
	CatalogController        *controllers.CatalogController
	ImageController          *controllers.ImageController
}

func ProvideRouter(p routerParams) *gin.Engine {
	gin.SetMode(p.Config.Server.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.CORSMiddleware(p.Config.Server.AllowedOrigins))
	r.Use(middleware.SessionMiddleware())

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "healthy")
	})

	api := r.Group("/api")
	api.POST("/suggestions", p.RecommendationController.GetSuggestions)
	api.GET("/options", p.CatalogController.GetOptions)
	api.GET("/images", p.ImageController.SearchImage)
	api.GET("/images/places/:ref", p.ImageController.PlacesPhoto)

	saved := api.Group("/saved-searches", middleware.OwnerMiddleware(p.Config.Auth.JWTSecret))
	saved.GET("", p.SavedSearchController.ListSavedSearches)
	saved.POST("", p.SavedSearchController.CreateSavedSearch)
	saved.GET("/:id", p.SavedSearchController.GetSavedSearch)
	saved.DELETE("/:id", p.SavedSearchController.DeleteSavedSearch)
	saved.POST("/:id/suggestions", p.RecommendationController.SuggestFromSavedSearch)
}
