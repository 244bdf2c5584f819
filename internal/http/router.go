package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/config"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/db"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/http/handlers"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/http/middleware"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/notify"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/provider"

	_ "github.com/scottyowen4683/aspiredentaldemo-sub003/docs"
)

func Router(cfg config.Config, store *db.Store, mailer notify.Mailer, invoker provider.Invoker, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Mailer:    mailer,
		Invoker:   invoker,
		Validator: validator.New(),
		Logger:    logger,
		AdminKey:  cfg.AdminKey,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/integrations", h.IntegrationsList)
		api.GET("/assistants", h.AssistantsList)
		api.GET("/assistants/:id/integration-settings", h.PolicyGet)
		api.GET("/assistants/:id/resolution", h.Resolution)
		api.GET("/assistants/:id/resolution/plan", h.ResolutionPlan)
		api.POST("/contact", h.ContactCreate)
		api.POST("/vapi/structured-request", h.VapiStructuredRequest)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/integrations", h.IntegrationCreate)
		admin.PUT("/integrations/:id", h.IntegrationUpdate)
		admin.DELETE("/integrations/:id", h.IntegrationDelete)
		admin.POST("/assistants", h.AssistantCreate)
		admin.PUT("/assistants/:id/integration-settings", h.PolicyPut)
		admin.POST("/events", h.EventDispatch)
		admin.GET("/events/deliveries", h.EventDeliveriesList)
		admin.GET("/contact", h.ContactList)
		admin.GET("/debug/resolution", h.DebugResolution)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
