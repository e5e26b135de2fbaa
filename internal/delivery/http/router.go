package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/spanapp/span-backend/internal/delivery/http/handler"
	"github.com/spanapp/span-backend/internal/delivery/http/middleware"
	"github.com/spanapp/span-backend/internal/matching"
)

type Router struct {
	feedHandler        *handler.FeedHandler
	signalHandler      *handler.SignalHandler
	profileHandler     *handler.ProfileHandler
	identityMiddleware *middleware.IdentityMiddleware
}

func NewRouter(
	feedHandler *handler.FeedHandler,
	signalHandler *handler.SignalHandler,
	profileHandler *handler.ProfileHandler,
	identityMiddleware *middleware.IdentityMiddleware,
) *Router {
	return &Router{
		feedHandler:        feedHandler,
		signalHandler:      signalHandler,
		profileHandler:     profileHandler,
		identityMiddleware: identityMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.identityMiddleware.RequireUser())
		{
			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("", r.feedHandler.GetFeed)
				feed.GET("/search", r.feedHandler.Search)
				feed.GET("/:profile_id/breakdown", r.feedHandler.GetBreakdown)
			}

			// Signal routes
			signals := protected.Group("/signals")
			{
				signals.POST("", r.signalHandler.Record)
				signals.GET("/stats", r.signalHandler.Stats)
				signals.DELETE("", r.signalHandler.Reset)
			}

			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
			}
		}
	}

	return router
}

// registerValidators adds the personality-code rule to gin's binding
// validator: a code is valid when it names one of the 16 known types.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("personality", func(fl validator.FieldLevel) bool {
			return matching.KnownPersonalityType(fl.Field().String())
		})
	}
}
